/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: formatter.go
Description: Custom log formatter for gqlsniff. Compact single-line output with optional
colors, a component prefix and fields in a stable order.
*/

package logging

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ComponentField names the field rendered as a [prefix] before the message
const ComponentField = "component"

// CustomFormatter renders entries as `time LEVEL [component] message k=v ...`
type CustomFormatter struct {
	Timestamp bool
	Caller    bool
	Colors    bool
}

// Format implements logrus.Formatter
func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var output strings.Builder

	if f.Timestamp {
		timestamp := entry.Time.Format("2006-01-02 15:04:05.000")
		output.WriteString(f.paint(36, timestamp) + " ") // Cyan
	}

	level := fmt.Sprintf("%-5s", strings.ToUpper(entry.Level.String()))
	output.WriteString(f.paint(f.getLevelColor(entry.Level), level) + " ")

	if component, ok := entry.Data[ComponentField]; ok {
		output.WriteString(f.paint(35, fmt.Sprintf("[%v]", component)) + " ") // Magenta
	}

	if f.Caller && entry.HasCaller() {
		caller := fmt.Sprintf("[%s:%d]", entry.Caller.File, entry.Caller.Line)
		output.WriteString(f.paint(33, caller) + " ") // Yellow
	}

	output.WriteString(entry.Message)

	if fields := f.formatFields(entry.Data); fields != "" {
		output.WriteString(" ")
		output.WriteString(fields)
	}

	output.WriteString("\n")
	return []byte(output.String()), nil
}

func (f *CustomFormatter) paint(color int, s string) string {
	if !f.Colors {
		return s
	}
	return fmt.Sprintf("\033[%dm%s\033[0m", color, s)
}

// getLevelColor returns the ANSI color code for a log level
func (f *CustomFormatter) getLevelColor(level logrus.Level) int {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return 37 // White
	case logrus.InfoLevel:
		return 32 // Green
	case logrus.WarnLevel:
		return 33 // Yellow
	case logrus.ErrorLevel:
		return 31 // Red
	default:
		return 35 // Magenta
	}
}

// formatFields renders fields sorted by key, skipping the component
func (f *CustomFormatter) formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		if key == ComponentField {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value := f.formatValue(fields[key])
		if f.Colors {
			parts = append(parts, fmt.Sprintf("\033[34m%s\033[0m=\033[32m%s\033[0m", key, value)) // Blue key, Green value
		} else {
			parts = append(parts, fmt.Sprintf("%s=%s", key, value))
		}
	}
	return strings.Join(parts, " ")
}

// formatValue formats a field value appropriately
func (f *CustomFormatter) formatValue(value interface{}) string {
	switch v := value.(type) {
	case time.Duration:
		return v.Round(time.Microsecond).String()
	case time.Time:
		return v.Format("15:04:05.000")
	case string:
		if len(v) > 80 {
			return fmt.Sprintf("%q", v[:80]+"...")
		}
		if strings.ContainsAny(v, " \t\"=") {
			return fmt.Sprintf("%q", v)
		}
		return v
	case error:
		return fmt.Sprintf("%q", v.Error())
	default:
		return fmt.Sprintf("%v", v)
	}
}
