/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report_writer.go
Description: Writes a JSON summary of each inference run into a report directory. File
names carry the run time and run id so reports from repeated runs never collide.
*/

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RunReport is the JSON document written for one inference run
type RunReport struct {
	RunID       string      `json:"run_id"`
	Version     string      `json:"version"`
	CaptureFile string      `json:"capture_file"`
	SchemaFile  string      `json:"schema_file"`
	Types       []string    `json:"types"`
	Stats       interface{} `json:"stats"`
	FinishedAt  time.Time   `json:"finished_at"`
}

// WriteRunReport writes report into dir and returns the file path.
// Name format: 2024-06-11_01-30-00_<run id>.json
func WriteRunReport(dir string, report *RunReport) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}
	if report.FinishedAt.IsZero() {
		report.FinishedAt = time.Now()
	}

	filename := fmt.Sprintf("%s_%s.json", report.FinishedAt.Format("2006-01-02_15-04-05"), report.RunID)
	filePath := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return filePath, nil
}
