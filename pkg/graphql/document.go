/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: document.go
Description: Closed document model for captured GraphQL operations. Operations, selections
and argument values are reduced to exactly what schema inference needs, so the walker can
switch over a fixed set of selection kinds instead of the parser's open AST.
*/

package graphql

// OperationKind is the kind of a top-level operation
type OperationKind string

const (
	OperationQuery        OperationKind = "query"
	OperationMutation     OperationKind = "mutation"
	OperationSubscription OperationKind = "subscription"
)

// OperationDocument is a parsed query document. Fragment definitions are
// dropped: spreads are never resolved.
type OperationDocument struct {
	Operations []*OperationDefinition
}

// OperationDefinition is a single query, mutation or subscription
type OperationDefinition struct {
	Kind         OperationKind
	Name         string // empty for anonymous operations
	SelectionSet SelectionSet
}

// SelectionSet is an ordered list of selections
type SelectionSet []Selection

// Selection is one of *FieldSelection, *InlineFragmentSelection or
// *FragmentSpreadSelection. The set is closed by the unexported marker method.
type Selection interface {
	isSelection()
}

// FieldSelection selects a field, optionally with nested selections
type FieldSelection struct {
	Name         string
	Alias        string
	Arguments    []Argument
	SelectionSet SelectionSet
}

// InlineFragmentSelection is `... on Type { ... }`. TypeCondition is empty
// when the fragment has no type condition.
type InlineFragmentSelection struct {
	TypeCondition string
	SelectionSet  SelectionSet
}

// FragmentSpreadSelection is `...Name`
type FragmentSpreadSelection struct {
	Name string
}

func (*FieldSelection) isSelection()          {}
func (*InlineFragmentSelection) isSelection() {}
func (*FragmentSpreadSelection) isSelection() {}

// Argument is a named argument on a field
type Argument struct {
	Name  string
	Value *Value
}

// ValueKind identifies the shape of an argument value
type ValueKind int

const (
	VariableValue ValueKind = iota
	IntValue
	FloatValue
	StringValue
	BlockValue
	BooleanValue
	NullValue
	EnumValue
	ListValue
	ObjectValue
)

// Value is an argument value. For VariableValue, Raw holds the variable name
// without the leading '$'. Lists and objects carry their items in Children;
// list items have an empty Name.
type Value struct {
	Kind     ValueKind
	Raw      string
	Children []ChildValue
}

// ChildValue is a list item or object field
type ChildValue struct {
	Name  string
	Value *Value
}

// IsVariable reports whether the value is a variable reference
func (v *Value) IsVariable() bool {
	return v != nil && v.Kind == VariableValue
}
