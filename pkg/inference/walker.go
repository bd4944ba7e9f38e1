/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: walker.go
Description: Selection walker. Traverses an operation's selection set, resolves argument
values against the request variables, writes the indented field trace and registers every
observed field into the schema accumulator.
*/

package inference

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kleascm/gqlsniff/pkg/capture"
	"github.com/kleascm/gqlsniff/pkg/graphql"
	"github.com/tidwall/gjson"
)

// untypedFragment is shown for inline fragments without a type condition
const untypedFragment = "interface/union"

// walker carries the per-record state of one traversal
type walker struct {
	schema    *Schema
	variables map[string]gjson.Result
	trace     io.Writer
	fields    int // fields visited, for stats
}

func newWalker(schema *Schema, variables map[string]gjson.Result, trace io.Writer) *walker {
	if trace == nil {
		trace = io.Discard
	}
	return &walker{schema: schema, variables: variables, trace: trace}
}

// walk visits selections under parentType, indented by depth spaces
func (w *walker) walk(selections graphql.SelectionSet, parentType string, depth int) {
	w.schema.Touch(parentType)
	indent := strings.Repeat(" ", depth)

	for _, selection := range selections {
		switch sel := selection.(type) {
		case *graphql.FieldSelection:
			w.walkField(sel, parentType, depth, indent)

		case *graphql.InlineFragmentSelection:
			typeName := sel.TypeCondition
			shown := typeName
			if typeName == "" {
				// No condition: the fragment applies to the enclosing type.
				typeName = parentType
				shown = untypedFragment
			}
			fmt.Fprintf(w.trace, "%sInline Fragment: ... on %s\n", indent, shown)
			w.walk(sel.SelectionSet, typeName, depth+2)

		case *graphql.FragmentSpreadSelection:
			// Named fragments are never resolved.
			fmt.Fprintf(w.trace, "%sFragment Spread: ...%s\n", indent, sel.Name)
		}
	}
}

func (w *walker) walkField(field *graphql.FieldSelection, parentType string, depth int, indent string) {
	w.fields++

	line := indent + "Field: " + field.Name
	argNames := make([]string, 0, len(field.Arguments))
	if len(field.Arguments) > 0 {
		parts := make([]string, 0, len(field.Arguments))
		for _, arg := range field.Arguments {
			argNames = append(argNames, arg.Name)
			parts = append(parts, arg.Name+": "+w.display(arg.Value))
		}
		line += " | Arguments: " + strings.Join(parts, ", ")
	}
	fmt.Fprintln(w.trace, line)

	subtype := ""
	if len(field.SelectionSet) > 0 {
		subtype = ChildTypeName(field.Name)
		w.walk(field.SelectionSet, subtype, depth+2)
	}
	w.schema.Register(parentType, field.Name, argNames, subtype)
}

// display renders an argument value for the trace. Variables resolve to their
// bound value, or stay as `$name` when unbound.
func (w *walker) display(v *graphql.Value) string {
	if v == nil {
		return "null"
	}
	switch v.Kind {
	case graphql.VariableValue:
		if bound, ok := w.variables[v.Raw]; ok {
			return capture.DisplayValue(bound)
		}
		return "$" + v.Raw
	case graphql.NullValue:
		return "null"
	case graphql.ListValue, graphql.ObjectValue:
		return w.displayNested(v)
	default:
		return v.Raw
	}
}

// displayNested renders list and object values in GraphQL syntax, quoting
// strings so items stay distinguishable.
func (w *walker) displayNested(v *graphql.Value) string {
	switch v.Kind {
	case graphql.ListValue:
		items := make([]string, 0, len(v.Children))
		for _, child := range v.Children {
			items = append(items, w.displayNested(child.Value))
		}
		return "[" + strings.Join(items, ", ") + "]"
	case graphql.ObjectValue:
		items := make([]string, 0, len(v.Children))
		for _, child := range v.Children {
			items = append(items, child.Name+": "+w.displayNested(child.Value))
		}
		return "{" + strings.Join(items, ", ") + "}"
	case graphql.StringValue, graphql.BlockValue:
		return strconv.Quote(v.Raw)
	case graphql.VariableValue:
		if bound, ok := w.variables[v.Raw]; ok && bound.Type == gjson.String {
			return strconv.Quote(bound.Str)
		}
		return w.display(v)
	default:
		return w.display(v)
	}
}
