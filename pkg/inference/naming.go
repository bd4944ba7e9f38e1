/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: naming.go
Description: Synthetic type naming. Nothing about the real schema is known, so nested
shapes are labelled by heuristics over field and operation names.
*/

package inference

import (
	"unicode"
	"unicode/utf8"

	"github.com/kleascm/gqlsniff/pkg/graphql"
)

// ChildTypeName names the type behind a field with a selection set: the field
// name with its first character upper-cased ("user" -> "User").
//
// Fields with the same name under different parents map to the same type and
// their shapes are merged. This is deliberate for now; see DESIGN.md.
func ChildTypeName(fieldName string) string {
	return Capitalize(fieldName)
}

// RootTypeName names the root type of an operation kind ("query" -> "Query")
func RootTypeName(kind graphql.OperationKind) string {
	return Capitalize(string(kind))
}

// Capitalize upper-cases the first character of s
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
