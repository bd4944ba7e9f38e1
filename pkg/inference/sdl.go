/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: sdl.go
Description: SDL emitter. Renders the accumulated schema as a schema-definition document.
Types, fields and arguments are written in alphabetical order so the same capture always
produces byte-identical output.
*/

package inference

import (
	"bufio"
	"io"
	"strings"
)

// SDLHeader opens every emitted schema document
const SDLHeader = `# Schema inferred from captured GraphQL traffic by gqlsniff.
# Argument types are always String; leaf fields are String, nested fields use
# synthetic type names. Fields selected only through fragment spreads are missing.
`

// WriteSDL writes the schema document to w
func (s *Schema) WriteSDL(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(SDLHeader)

	for _, typeName := range s.Types() {
		bw.WriteString("\n")
		fields := s.Fields(typeName)
		if len(fields) == 0 {
			// Only reached through fragment spreads; nothing is known about it.
			bw.WriteString("type " + typeName + "\n")
			continue
		}

		bw.WriteString("type " + typeName + " {\n")
		for _, fieldName := range fields {
			bw.WriteString("  " + fieldLine(fieldName, s.Field(typeName, fieldName)) + "\n")
		}
		bw.WriteString("}\n")
	}

	return bw.Flush()
}

// SDL returns the schema document as a string
func (s *Schema) SDL() string {
	var sb strings.Builder
	_ = s.WriteSDL(&sb)
	return sb.String()
}

// fieldLine formats `name(a: String, b: String): Type`
func fieldLine(name string, record *FieldRecord) string {
	var sb strings.Builder
	sb.WriteString(name)

	if args := record.ArgumentNames(); len(args) > 0 {
		sb.WriteString("(")
		for i, arg := range args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(arg + ": " + DefaultScalar)
		}
		sb.WriteString(")")
	}

	sb.WriteString(": " + record.Type())
	return sb.String()
}
