package eval

import (
	"strconv"
	"strings"
)

// Render produces the external "runtime output format" of language spec
// §6: the textual form a file run or REPL evaluation emits for its
// top-level value. It differs from Value.String() only in that strings
// are double-quoted here — String() leaves them bare so ++  and
// to_string() see a value's natural text, not its rendered form.
func Render(v Value) string {
	switch x := v.(type) {
	case String:
		return strconv.Quote(string(x))
	case *List:
		return "[" + renderJoin(x.Elements) + "]"
	case *Tuple:
		return "(" + renderJoin(x.Elements) + ")"
	case *Record:
		parts := make([]string, len(x.Fields))
		for i, f := range x.Fields {
			parts[i] = f.Name + ": " + Render(f.Value)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *Tag:
		if len(x.Args) == 0 {
			return x.Name
		}
		return x.Name + "(" + renderJoin(x.Args) + ")"
	}
	return v.String()
}

func renderJoin(values []Value) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = Render(v)
	}
	return strings.Join(parts, ", ")
}
