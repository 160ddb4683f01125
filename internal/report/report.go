// Package report builds and writes the JSON analysis report for a batch of
// answered questions.
package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/finqa-cli/internal/model"
)

// Metadata summarizes one report run.
type Metadata struct {
	GeneratedAt    time.Time `json:"generated_at"`
	TotalQuestions int       `json:"total_questions"`
	Successful     int       `json:"successful"`
	Model          string    `json:"model"`
	DataFile       string    `json:"data_file"`
}

// Report is the persisted output of a batch run.
type Report struct {
	Metadata Metadata             `json:"metadata"`
	Results  []model.AnswerRecord `json:"results"`
}

// Build assembles a report from answer records. modelName is the augmentation
// model id, or "rule-based" when augmentation was disabled.
func Build(records []model.AnswerRecord, modelName, dataFile string) *Report {
	successful := 0
	for _, r := range records {
		if r.Status == model.StatusSuccess {
			successful++
		}
	}
	return &Report{
		Metadata: Metadata{
			GeneratedAt:    time.Now().UTC(),
			TotalQuestions: len(records),
			Successful:     successful,
			Model:          modelName,
			DataFile:       dataFile,
		},
		Results: records,
	}
}

// Write serializes the report as indented JSON, creating parent directories
// as needed.
func Write(rep *Report, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "report: mkdir %s", dir)
		}
	}

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return eris.Wrap(err, "report: marshal")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "report: write %s", path)
	}
	return nil
}
