package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rdj5415/a2e-quant-pipeline/engine"
)

// New packages a run summary under a run name
func New(runName, strategy string, summary *engine.Summary) (*Report, error) {
	if runName == "" {
		return nil, errRunNameEmpty
	}
	if summary == nil {
		return nil, errNilSummary
	}
	return &Report{
		RunName:     runName,
		Strategy:    strategy,
		GeneratedAt: time.Now().UTC(),
		Summary:     *summary,
	}, nil
}

// Write renders the report as indented JSON under dir and returns the
// written path
func (r *Report) Write(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%s.json", sanitiseName(r.RunName)))
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func sanitiseName(name string) string {
	replacer := strings.NewReplacer(" ", "-", "/", "-", ":", "-")
	return replacer.Replace(strings.ToLower(name))
}
