package builtins

// FuncSpec documents one built-in's signature for a REPL or doc generator
// to render (language spec §4.6 lists these ten exactly).
type FuncSpec struct {
	Name    string
	Doc     string
	Args    []string
	Returns string
	Example string
}

// Docs returns documentation for every built-in value.
func Docs() []FuncSpec {
	return builtinDocs
}

var builtinDocs = []FuncSpec{
	{
		Name:    "map",
		Doc:     "Apply a function to every element of a list, returning a new list",
		Args:    []string{"fn", "list"},
		Returns: "List(b)",
		Example: `[1, 2, 3] |> map(fn(x) -> x * 2)`,
	},
	{
		Name:    "filter",
		Doc:     "Keep only the elements of a list for which fn returns true",
		Args:    []string{"fn", "list"},
		Returns: "List(a)",
		Example: `[1, 2, 3, 4] |> filter(fn(x) -> x > 2)`,
	},
	{
		Name:    "fold",
		Doc:     "Reduce a list to a single value by repeated application of step",
		Args:    []string{"seed", "step", "list"},
		Returns: "b",
		Example: `[1, 2, 3] |> fold(0, fn(acc, x) -> acc + x)`,
	},
	{
		Name:    "length",
		Doc:     "Return the number of elements in a list, or the number of characters in a string",
		Args:    []string{"value"},
		Returns: "Int",
		Example: `length([1, 2, 3])`,
	},
	{
		Name:    "head",
		Doc:     "Return the first element of a list, or Err on an empty list",
		Args:    []string{"list"},
		Returns: "Result(a)",
		Example: `head([1, 2, 3])?`,
	},
	{
		Name:    "tail",
		Doc:     "Return every element but the first, or Err on an empty list",
		Args:    []string{"list"},
		Returns: "Result(List(a))",
		Example: `tail([1, 2, 3])?`,
	},
	{
		Name:    "to_string",
		Doc:     "Render any value as its textual form",
		Args:    []string{"value"},
		Returns: "String",
		Example: `to_string(42)`,
	},
	{
		Name:    "print",
		Doc:     "Write a value's textual form to the stdout sink, followed by a newline",
		Args:    []string{"value"},
		Returns: "Unit",
		Example: `print("hello")`,
	},
	{
		Name:    "concat",
		Doc:     "Concatenate two strings",
		Args:    []string{"a", "b"},
		Returns: "String",
		Example: `concat("foo", "bar")`,
	},
	{
		Name:    "each",
		Doc:     "Call fn once per element of a list, for side effects, discarding results",
		Args:    []string{"fn", "list"},
		Returns: "Unit",
		Example: `[1, 2, 3] |> each(fn(x) -> print(x))`,
	},
}
