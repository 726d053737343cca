package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifySameConstructor(t *testing.T) {
	s, err := Unify(Int, Int, Empty())
	require.NoError(t, err)
	assert.Equal(t, Int, s.Apply(Int))
}

func TestUnifyMismatchedConstructorsFail(t *testing.T) {
	_, err := Unify(Int, Bool, Empty())
	assert.Error(t, err)
}

func TestUnifyBindsVar(t *testing.T) {
	v := &Var{ID: 0}
	s, err := Unify(v, Int, Empty())
	require.NoError(t, err)
	assert.Equal(t, Int, s.Apply(v))
}

func TestUnifySameVarIsNoop(t *testing.T) {
	v := &Var{ID: 0}
	s, err := Unify(v, v, Empty())
	require.NoError(t, err)
	assert.Equal(t, v, s.Apply(v))
}

func TestUnifyOccursCheckFails(t *testing.T) {
	v := &Var{ID: 0}
	listOfV := &List{Elem: v}
	_, err := Unify(v, listOfV, Empty())
	assert.Error(t, err)
}

func TestUnifyFuncComponentwise(t *testing.T) {
	v0, v1 := &Var{ID: 0}, &Var{ID: 1}
	f1 := &Func{Param: v0, Return: v1}
	f2 := &Func{Param: Int, Return: Bool}
	s, err := Unify(f1, f2, Empty())
	require.NoError(t, err)
	assert.Equal(t, Int, s.Apply(v0))
	assert.Equal(t, Bool, s.Apply(v1))
}

func TestUnifyListOnElem(t *testing.T) {
	v := &Var{ID: 0}
	s, err := Unify(&List{Elem: v}, &List{Elem: Str}, Empty())
	require.NoError(t, err)
	assert.Equal(t, Str, s.Apply(v))
}

func TestUnifyTupleRequiresEqualLength(t *testing.T) {
	a := &Tuple{Elements: []Type{Int, Int}}
	b := &Tuple{Elements: []Type{Int, Int, Int}}
	_, err := Unify(a, b, Empty())
	assert.Error(t, err)
}

func TestUnifyTupleComponentwise(t *testing.T) {
	v0, v1 := &Var{ID: 0}, &Var{ID: 1}
	a := &Tuple{Elements: []Type{v0, v1}}
	b := &Tuple{Elements: []Type{Int, Str}}
	s, err := Unify(a, b, Empty())
	require.NoError(t, err)
	assert.Equal(t, Int, s.Apply(v0))
	assert.Equal(t, Str, s.Apply(v1))
}

func TestUnifyResultOnOkCarrier(t *testing.T) {
	v := &Var{ID: 0}
	s, err := Unify(&Result{Ok: v}, &Result{Ok: Bool}, Empty())
	require.NoError(t, err)
	assert.Equal(t, Bool, s.Apply(v))
}

func TestUnifyTagRequiresMatchingNameAndArity(t *testing.T) {
	_, err := Unify(&Tag{Name: "Some", Args: []Type{Int}}, &Tag{Name: "None"}, Empty())
	assert.Error(t, err)

	_, err = Unify(
		&Tag{Name: "Pair", Args: []Type{Int, Int}},
		&Tag{Name: "Pair", Args: []Type{Int}},
		Empty(),
	)
	assert.Error(t, err)
}

func TestUnifyTagComponentwise(t *testing.T) {
	v := &Var{ID: 0}
	s, err := Unify(
		&Tag{Name: "Some", Args: []Type{v}},
		&Tag{Name: "Some", Args: []Type{Int}},
		Empty(),
	)
	require.NoError(t, err)
	assert.Equal(t, Int, s.Apply(v))
}

func TestUnifyRecordsOnFieldIntersection(t *testing.T) {
	a := &Record{Fields: map[string]Type{"x": Int, "y": Str}}
	b := &Record{Fields: map[string]Type{"x": Int, "z": Bool}}
	_, err := Unify(a, b, Empty())
	require.NoError(t, err)
}

func TestUnifyRecordsOpenRowAbsorbsExtraFields(t *testing.T) {
	row := &Var{ID: 0}
	open := &Record{Fields: map[string]Type{"x": Int}, Row: row}
	closed := &Record{Fields: map[string]Type{"x": Int, "y": Str}}
	s, err := Unify(open, closed, Empty())
	require.NoError(t, err)
	applied := s.Apply(row)
	rec, ok := applied.(*Record)
	require.True(t, ok)
	assert.Equal(t, Str, rec.Fields["y"])
}

func TestUnifyRecordsFieldMismatchFails(t *testing.T) {
	a := &Record{Fields: map[string]Type{"x": Int}}
	b := &Record{Fields: map[string]Type{"x": Str}}
	_, err := Unify(a, b, Empty())
	assert.Error(t, err)
}

func TestUnifyDifferentShapesFail(t *testing.T) {
	_, err := Unify(&List{Elem: Int}, &Tuple{Elements: []Type{Int}}, Empty())
	assert.Error(t, err)
}
