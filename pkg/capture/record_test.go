/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: record_test.go
Description: Tests for the capture file reader: record extraction, skipped line
classification and variable display.
*/

package capture_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/kleascm/gqlsniff/pkg/capture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// readAll drains a reader, splitting records from skipped lines
func readAll(t *testing.T, input string) ([]*capture.Record, []*capture.RecordError) {
	t.Helper()
	rd := capture.NewReader(strings.NewReader(input))
	var records []*capture.Record
	var skipped []*capture.RecordError
	for {
		rec, err := rd.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		var recErr *capture.RecordError
		if errors.As(err, &recErr) {
			skipped = append(skipped, recErr)
			continue
		}
		require.NoError(t, err)
		records = append(records, rec)
	}
	return records, skipped
}

func TestReaderExtractsQueryAndVariables(t *testing.T) {
	records, skipped := readAll(t, `{"query": "{ foo }", "variables": {"id": "42", "n": 3}, "operationName": null}`+"\n")
	require.Len(t, records, 1)
	assert.Empty(t, skipped)

	rec := records[0]
	assert.Equal(t, 1, rec.Line)
	assert.Equal(t, "{ foo }", rec.Query)

	id, ok := rec.Variable("id")
	require.True(t, ok)
	assert.Equal(t, "42", capture.DisplayValue(id))

	n, ok := rec.Variable("n")
	require.True(t, ok)
	assert.Equal(t, "3", capture.DisplayValue(n))

	_, ok = rec.Variable("missing")
	assert.False(t, ok)
}

func TestReaderDefaultsVariables(t *testing.T) {
	records, _ := readAll(t, `{"query": "{ a }"}
{"query": "{ b }", "variables": null}
{"query": "{ c }", "variables": "nope"}`)
	require.Len(t, records, 3)
	for _, rec := range records {
		assert.NotNil(t, rec.Variables)
		assert.Empty(t, rec.Variables)
	}
}

func TestReaderClassifiesSkippedLines(t *testing.T) {
	input := strings.Join([]string{
		`{"query": "{ foo }"}`,
		` not json`,
		` {"query": ""}`,
		``,
		`[1, 2, 3]`,
		`"just a string"`,
		`{"operationName": "X"}`,
		`{"query": 42}`,
		` {"query":"{ bar }"}`,
	}, "\n")

	records, skipped := readAll(t, input)
	require.Len(t, records, 2)
	assert.Equal(t, "{ foo }", records[0].Query)
	assert.Equal(t, "{ bar }", records[1].Query)
	assert.Equal(t, 9, records[1].Line)

	require.Len(t, skipped, 6)
	assert.ErrorIs(t, skipped[0], capture.ErrDecode)
	assert.Equal(t, 2, skipped[0].Line)
	assert.ErrorIs(t, skipped[1], capture.ErrNoQuery)
	assert.ErrorIs(t, skipped[2], capture.ErrShape)
	assert.ErrorIs(t, skipped[3], capture.ErrShape)
	assert.ErrorIs(t, skipped[4], capture.ErrNoQuery)
	assert.ErrorIs(t, skipped[5], capture.ErrNoQuery)
}

func TestReaderHandlesCRLFAndLongLines(t *testing.T) {
	long := strings.Repeat("a ", 100000)
	input := `{"query": "{ x }"}` + "\r\n" + `{"query": "{ ` + long + `}"}` + "\r\n"

	records, skipped := readAll(t, input)
	assert.Empty(t, skipped)
	require.Len(t, records, 2)
	assert.Equal(t, "{ x }", records[0].Query)
	assert.True(t, strings.HasPrefix(records[1].Query, "{ a a"))
}

func TestReaderEmptyInput(t *testing.T) {
	rd := capture.NewReader(strings.NewReader(""))
	_, err := rd.Next()
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, 0, rd.Line())
}

func TestDisplayValue(t *testing.T) {
	cases := map[string]string{
		`"hello"`:             "hello",
		`42`:                  "42",
		`1.5`:                 "1.5",
		`true`:                "true",
		`false`:               "false",
		`null`:                "null",
		`{ "a" : [1, 2] }`:    `{"a":[1,2]}`,
		`[ "x", { "y": 1 } ]`: `["x",{"y":1}]`,
	}
	for raw, want := range cases {
		assert.Equal(t, want, capture.DisplayValue(gjson.Parse(raw)), raw)
	}
}
