package report

import (
	"errors"
	"time"

	"github.com/rdj5415/a2e-quant-pipeline/engine"
)

var (
	errRunNameEmpty = errors.New("run name is empty")
	errNilSummary   = errors.New("nil run summary")
)

// Report is the serialisable record of one completed run
type Report struct {
	RunName     string         `json:"run_name"`
	Strategy    string         `json:"strategy,omitempty"`
	GeneratedAt time.Time      `json:"generated_at"`
	Summary     engine.Summary `json:"summary"`
}
