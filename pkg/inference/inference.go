/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: inference.go
Description: Schema inference engine. Drives one pass over a capture file: every record is
parsed as a GraphQL document, every operation is walked into a fresh schema accumulator,
and the finished schema is returned with run statistics. Record-level failures are
reported and skipped; only failing to read the capture itself is an error.
*/

package inference

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/gqlsniff/pkg/capture"
	"github.com/kleascm/gqlsniff/pkg/graphql"
	"github.com/sirupsen/logrus"
)

const traceSeparator = "------------------------------------------------------"

// Stats summarises one inference run
type Stats struct {
	Lines          int           `json:"lines"`           // lines read, blank ones included
	Records        int           `json:"records"`         // records with a query
	Skipped        int           `json:"skipped"`         // lines or records that contributed nothing
	DecodeErrors   int           `json:"decode_errors"`   // lines that were not JSON
	ShapeErrors    int           `json:"shape_errors"`    // JSON lines that were not objects
	MissingQueries int           `json:"missing_queries"` // objects without a query
	ParseErrors    int           `json:"parse_errors"`    // queries that failed to parse
	Operations     int           `json:"operations"`      // operation definitions walked
	FieldsVisited  int           `json:"fields_visited"`  // field selections walked
	Types          int           `json:"types"`           // distinct types in the result
	Fields         int           `json:"fields"`          // distinct (type, field) pairs
	Duration       time.Duration `json:"duration"`
}

// Diagnostics counts the skipped lines that were reported. Missing queries
// are skipped silently and are not included.
func (s Stats) Diagnostics() int {
	return s.DecodeErrors + s.ShapeErrors + s.ParseErrors
}

// Result is the outcome of one run
type Result struct {
	RunID  string
	Schema *Schema
	Stats  Stats
}

// Engine infers a schema from captured operations
type Engine struct {
	trace  io.Writer
	logger logrus.FieldLogger
}

// Option configures an Engine
type Option func(*Engine)

// WithTrace sets where the per-operation field trace is written
func WithTrace(w io.Writer) Option {
	return func(e *Engine) {
		if w != nil {
			e.trace = w
		}
	}
}

// WithLogger sets the logger for diagnostics
func WithLogger(logger logrus.FieldLogger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine. By default the trace is discarded and
// diagnostics go to the standard logrus logger.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		trace:  io.Discard,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RunFile runs the engine over a capture file
func (e *Engine) RunFile(path string) (*Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open capture file: %w", err)
	}
	defer file.Close()

	return e.Run(file)
}

// Run consumes a capture stream to the end and returns the inferred schema.
// The schema belongs to this run only.
func (e *Engine) Run(r io.Reader) (*Result, error) {
	start := time.Now()
	result := &Result{
		RunID:  uuid.New().String(),
		Schema: NewSchema(),
	}
	log := e.logger.WithField("run_id", result.RunID)
	stats := &result.Stats

	reader := capture.NewReader(r)
	for {
		record, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var recErr *capture.RecordError
			if !errors.As(err, &recErr) {
				return nil, err
			}
			e.skip(log, stats, recErr)
			continue
		}

		stats.Records++
		doc, err := graphql.Parse(record.Query)
		if err != nil {
			stats.ParseErrors++
			stats.Skipped++
			log.WithFields(logrus.Fields{
				"line":  record.Line,
				"error": err.Error(),
			}).Warn("Skipping record: query is not a valid GraphQL document")
			continue
		}

		for _, op := range doc.Operations {
			stats.Operations++
			e.writeHeader(op)
			w := newWalker(result.Schema, record.Variables, e.trace)
			w.walk(op.SelectionSet, RootTypeName(op.Kind), 2)
			stats.FieldsVisited += w.fields
		}
	}

	stats.Lines = reader.Line()
	stats.Types = result.Schema.Len()
	stats.Fields = result.Schema.FieldCount()
	stats.Duration = time.Since(start)

	log.WithFields(logrus.Fields{
		"records":     stats.Records,
		"operations":  stats.Operations,
		"types":       stats.Types,
		"fields":      stats.Fields,
		"diagnostics": stats.Diagnostics(),
	}).Debug("Inference pass finished")

	return result, nil
}

func (e *Engine) skip(log logrus.FieldLogger, stats *Stats, recErr *capture.RecordError) {
	stats.Skipped++
	entry := log.WithField("line", recErr.Line)

	switch {
	case errors.Is(recErr, capture.ErrDecode):
		stats.DecodeErrors++
		entry.WithField("text", truncate(recErr.Text, 80)).Warn("Failed to parse JSON")
	case errors.Is(recErr, capture.ErrShape):
		stats.ShapeErrors++
		entry.WithField("text", truncate(recErr.Text, 80)).Warn("Skipping line: JSON value is not an object")
	default:
		stats.MissingQueries++
		entry.Debug("Skipping record without query")
	}
}

func (e *Engine) writeHeader(op *graphql.OperationDefinition) {
	name := op.Name
	if name == "" {
		name = "(anonymous)"
	}
	fmt.Fprintf(e.trace, "\n%s\nOperation type: %s\nOperation name: %s\n", traceSeparator, op.Kind, name)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
