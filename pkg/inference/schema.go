/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: schema.go
Description: Schema accumulator. Collects every (type, field) pair observed in captured
operations together with the argument names and nested type names seen for it. Entries
are only ever merged, never removed, for the lifetime of one inference run.
*/

package inference

import (
	"sort"
)

// DefaultScalar is the placeholder type for arguments and leaf fields
const DefaultScalar = "String"

// FieldRecord holds everything observed about one field of one type
type FieldRecord struct {
	Arguments map[string]bool // argument names seen
	Subtypes  map[string]bool // synthetic child types seen
}

// NewFieldRecord creates an empty FieldRecord
func NewFieldRecord() *FieldRecord {
	return &FieldRecord{
		Arguments: make(map[string]bool),
		Subtypes:  make(map[string]bool),
	}
}

// ArgumentNames returns the argument names in alphabetical order
func (f *FieldRecord) ArgumentNames() []string {
	return sortedKeys(f.Arguments)
}

// SubtypeCandidates returns every child type seen, alphabetically
func (f *FieldRecord) SubtypeCandidates() []string {
	return sortedKeys(f.Subtypes)
}

// Type resolves the field's output type: the lexicographically smallest
// subtype candidate, or DefaultScalar for leaf fields.
func (f *FieldRecord) Type() string {
	candidates := f.SubtypeCandidates()
	if len(candidates) == 0 {
		return DefaultScalar
	}
	return candidates[0]
}

// Schema maps type name -> field name -> FieldRecord
type Schema struct {
	types map[string]map[string]*FieldRecord
}

// NewSchema creates an empty schema
func NewSchema() *Schema {
	return &Schema{types: make(map[string]map[string]*FieldRecord)}
}

// Touch makes sure a type exists even if no field is ever registered on it
func (s *Schema) Touch(typeName string) {
	if _, ok := s.types[typeName]; !ok {
		s.types[typeName] = make(map[string]*FieldRecord)
	}
}

// Register merges one observation of parentType.fieldName. An empty subtype
// means the field was selected as a leaf.
func (s *Schema) Register(parentType, fieldName string, args []string, subtype string) {
	s.Touch(parentType)
	fields := s.types[parentType]

	record, ok := fields[fieldName]
	if !ok {
		record = NewFieldRecord()
		fields[fieldName] = record
	}
	for _, arg := range args {
		record.Arguments[arg] = true
	}
	if subtype != "" {
		record.Subtypes[subtype] = true
	}
}

// Types returns all type names in alphabetical order
func (s *Schema) Types() []string {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Fields returns the field names of a type in alphabetical order
func (s *Schema) Fields(typeName string) []string {
	fields := s.types[typeName]
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Field returns the record for typeName.fieldName, or nil
func (s *Schema) Field(typeName, fieldName string) *FieldRecord {
	return s.types[typeName][fieldName]
}

// HasType reports whether a type has been seen
func (s *Schema) HasType(typeName string) bool {
	_, ok := s.types[typeName]
	return ok
}

// Len returns the number of types
func (s *Schema) Len() int {
	return len(s.types)
}

// FieldCount returns the number of distinct (type, field) pairs
func (s *Schema) FieldCount() int {
	n := 0
	for _, fields := range s.types {
		n += len(fields)
	}
	return n
}

// sortedKeys returns the keys of a set in alphabetical order
func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
