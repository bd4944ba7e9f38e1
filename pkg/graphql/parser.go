/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser.go
Description: Query document parser. Wraps gqlparser's syntax-only query parser and converts
its AST into the closed document model used by the inference engine.
*/

package graphql

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Parse parses a query document. On failure no partial document is returned.
func Parse(query string) (*OperationDocument, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: "capture", Input: query})
	if err != nil {
		return nil, fmt.Errorf("failed to parse query document: %w", err)
	}

	out := &OperationDocument{
		Operations: make([]*OperationDefinition, 0, len(doc.Operations)),
	}
	for _, op := range doc.Operations {
		out.Operations = append(out.Operations, &OperationDefinition{
			Kind:         operationKind(op.Operation),
			Name:         op.Name,
			SelectionSet: convertSelectionSet(op.SelectionSet),
		})
	}
	return out, nil
}

// operationKind maps the parser's operation type. The parser reports an
// anonymous `{ ... }` shorthand as a query.
func operationKind(op ast.Operation) OperationKind {
	switch op {
	case ast.Mutation:
		return OperationMutation
	case ast.Subscription:
		return OperationSubscription
	default:
		return OperationQuery
	}
}

func convertSelectionSet(set ast.SelectionSet) SelectionSet {
	if len(set) == 0 {
		return nil
	}
	out := make(SelectionSet, 0, len(set))
	for _, sel := range set {
		switch s := sel.(type) {
		case *ast.Field:
			field := &FieldSelection{
				Name:         s.Name,
				Alias:        s.Alias,
				SelectionSet: convertSelectionSet(s.SelectionSet),
			}
			for _, arg := range s.Arguments {
				field.Arguments = append(field.Arguments, Argument{
					Name:  arg.Name,
					Value: convertValue(arg.Value),
				})
			}
			out = append(out, field)
		case *ast.InlineFragment:
			out = append(out, &InlineFragmentSelection{
				TypeCondition: s.TypeCondition,
				SelectionSet:  convertSelectionSet(s.SelectionSet),
			})
		case *ast.FragmentSpread:
			out = append(out, &FragmentSpreadSelection{Name: s.Name})
		}
	}
	return out
}

func convertValue(v *ast.Value) *Value {
	if v == nil {
		return &Value{Kind: NullValue, Raw: "null"}
	}
	out := &Value{Kind: valueKind(v.Kind), Raw: v.Raw}
	for _, child := range v.Children {
		out.Children = append(out.Children, ChildValue{
			Name:  child.Name,
			Value: convertValue(child.Value),
		})
	}
	return out
}

func valueKind(k ast.ValueKind) ValueKind {
	switch k {
	case ast.Variable:
		return VariableValue
	case ast.IntValue:
		return IntValue
	case ast.FloatValue:
		return FloatValue
	case ast.StringValue:
		return StringValue
	case ast.BlockValue:
		return BlockValue
	case ast.BooleanValue:
		return BooleanValue
	case ast.EnumValue:
		return EnumValue
	case ast.ListValue:
		return ListValue
	case ast.ObjectValue:
		return ObjectValue
	default:
		return NullValue
	}
}
