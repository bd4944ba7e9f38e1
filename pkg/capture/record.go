/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: record.go
Description: Capture file records and the streaming reader that produces them. The capture
file is newline-delimited JSON; each line is one intercepted request body carrying a
GraphQL `query` and optional `variables`.
*/

package capture

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var (
	// ErrDecode marks a line that is not valid JSON
	ErrDecode = errors.New("line is not valid JSON")
	// ErrShape marks a JSON line whose top-level value is not an object
	ErrShape = errors.New("line is not a JSON object")
	// ErrNoQuery marks an object without a non-empty string `query`
	ErrNoQuery = errors.New("record has no query")
)

// Record is one captured GraphQL request
type Record struct {
	Line      int                     // 1-based line number in the capture file
	Query     string                  // GraphQL document text
	Variables map[string]gjson.Result // variable bindings, never nil
}

// Variable returns the binding for name, if present
func (r *Record) Variable(name string) (gjson.Result, bool) {
	v, ok := r.Variables[name]
	return v, ok
}

// RecordError describes a line that was skipped
type RecordError struct {
	Line int
	Kind error // ErrDecode, ErrShape or ErrNoQuery
	Text string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Kind)
}

func (e *RecordError) Unwrap() error {
	return e.Kind
}

// Reader streams records from a capture file. Lines have no length limit.
type Reader struct {
	r    *bufio.Reader
	line int
}

// NewReader creates a reader over a capture stream
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// Next returns the next record. Skipped lines are reported as *RecordError and
// the caller may keep reading; io.EOF marks the end of the stream. Any other
// error comes from the underlying reader.
func (rd *Reader) Next() (*Record, error) {
	for {
		raw, err := rd.r.ReadBytes('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read capture line %d: %w", rd.line+1, err)
		}
		if len(raw) == 0 && err != nil {
			return nil, io.EOF
		}
		rd.line++

		line := bytes.TrimSpace(raw)
		if len(line) == 0 {
			if err != nil {
				return nil, io.EOF
			}
			continue
		}
		return decodeRecord(rd.line, line)
	}
}

// Line returns the number of lines consumed so far
func (rd *Reader) Line() int {
	return rd.line
}

func decodeRecord(lineNo int, line []byte) (*Record, error) {
	if !gjson.ValidBytes(line) {
		return nil, &RecordError{Line: lineNo, Kind: ErrDecode, Text: string(line)}
	}

	doc := gjson.ParseBytes(line)
	if !doc.IsObject() {
		return nil, &RecordError{Line: lineNo, Kind: ErrShape, Text: string(line)}
	}

	query := doc.Get("query")
	if query.Type != gjson.String || query.Str == "" {
		return nil, &RecordError{Line: lineNo, Kind: ErrNoQuery}
	}

	rec := &Record{
		Line:      lineNo,
		Query:     query.Str,
		Variables: map[string]gjson.Result{},
	}
	if vars := doc.Get("variables"); vars.IsObject() {
		rec.Variables = vars.Map()
	}
	return rec, nil
}

// DisplayValue renders a variable binding for the trace: strings unquoted,
// numbers as written, null as `null`, objects and arrays as compact JSON.
func DisplayValue(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return v.Str
	case gjson.Null:
		return "null"
	case gjson.JSON:
		return string(pretty.Ugly([]byte(v.Raw)))
	default:
		return v.String()
	}
}
