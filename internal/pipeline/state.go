package pipeline

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"
	"github.com/spigell/rfp-analyzer/internal/analysis"
)

// State carries the inputs and results of one analysis run between stages.
// Stages return an updated copy; earlier results are never modified.
type State struct {
	RunID     string    `json:"run_id"`
	StartedAt time.Time `json:"started_at"`

	RFPText     string `json:"-"`
	CompanyText string `json:"-"`

	RFPChunks     []string             `json:"rfp_chunks"`
	CompanyChunks []string             `json:"company_chunks"`
	Summary       string               `json:"summary,omitempty"`
	Criteria      []analysis.Criterion `json:"criteria"`
	Evaluation    string               `json:"evaluation,omitempty"`
	Verdict       *analysis.Verdict    `json:"verdict,omitempty"`

	Completed []string `json:"completed_stages"`
}

// NewState starts a run for the given document texts.
func NewState(rfpText, companyText string) State {
	return State{
		RunID:       uuid.NewString(),
		StartedAt:   time.Now().UTC(),
		RFPText:     rfpText,
		CompanyText: companyText,
	}
}

// Done reports whether the named stage has completed.
func (s State) Done(stage string) bool {
	for _, name := range s.Completed {
		if name == stage {
			return true
		}
	}
	return false
}

// Dump writes the state as indented JSON to a new temporary file in dir and
// returns the file name. An empty dir selects the system temp directory.
func Dump(fs afero.Fs, dir string, state State) (string, error) {
	file, err := afero.TempFile(fs, dir, fmt.Sprintf("rfp_analysis_%s_*.json", shortID(state.RunID)))
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return "", err
	}
	return file.Name(), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "run"
	}
	return id
}
