package analysis

import (
	"fmt"
	"strings"
)

// Decision is the binary eligibility outcome. The zero value is NotEligible.
type Decision int

const (
	NotEligible Decision = iota
	Eligible
)

// String returns the display form used in reports and console output.
func (d Decision) String() string {
	if d == Eligible {
		return "ELIGIBLE"
	}
	return "NOT ELIGIBLE"
}

// MarshalText encodes the decision as ELIGIBLE or NOT_ELIGIBLE.
func (d Decision) MarshalText() ([]byte, error) {
	if d == Eligible {
		return []byte("ELIGIBLE"), nil
	}
	return []byte("NOT_ELIGIBLE"), nil
}

func (d *Decision) UnmarshalText(text []byte) error {
	switch strings.ToUpper(strings.TrimSpace(string(text))) {
	case "ELIGIBLE":
		*d = Eligible
	case "NOT_ELIGIBLE", "NOT ELIGIBLE":
		*d = NotEligible
	default:
		return fmt.Errorf("unknown decision %q", text)
	}
	return nil
}

const (
	ReasonCriticalFailure  = "Company fails to meet one or more critical criteria, which are mandatory."
	ReasonImportantFailure = "Company fails to meet important eligibility requirements. All must be clearly satisfied."
	ReasonNotFullyMet      = "Company does not fully meet all eligibility criteria with clear, explicit evidence."
	ReasonAllMet           = "Company fully satisfies all eligibility requirements with clear evidence."
	ReasonNoCriteria       = "No eligibility criteria could be extracted from the RFP, so eligibility cannot be confirmed."
)

// Tally holds the keyword counts a verdict was derived from.
type Tally struct {
	CriticalFails  int `json:"critical_fails"`
	ImportantFails int `json:"important_fails"`
	FullyMet       int `json:"fully_met"`
	Criteria       int `json:"criteria"`
}

// Verdict is the eligibility decision and its rationale.
type Verdict struct {
	Decision  Decision `json:"decision"`
	Reasoning string   `json:"reasoning"`
	Tally     Tally    `json:"tally"`
}

// VerdictStrategy derives a verdict from the criteria and the evaluation text.
type VerdictStrategy interface {
	Derive(criteria []Criterion, evaluation string) Verdict
}

// KeywordStrategy scans the evaluation line by line for "critical",
// "important", "does not meet" and "fully meets". Anything it cannot
// confirm counts against eligibility.
type KeywordStrategy struct {
	// RequireCriteria makes an empty criteria list NotEligible instead of vacuously Eligible.
	RequireCriteria bool
}

// Derive implements VerdictStrategy.
func (s KeywordStrategy) Derive(criteria []Criterion, evaluation string) Verdict {
	tally := CountKeywords(evaluation)
	tally.Criteria = len(criteria)

	verdict := Verdict{Decision: NotEligible, Tally: tally}

	switch {
	case s.RequireCriteria && len(criteria) == 0:
		verdict.Reasoning = ReasonNoCriteria
	case tally.CriticalFails > 0:
		verdict.Reasoning = ReasonCriticalFailure
	case tally.ImportantFails > 0:
		verdict.Reasoning = ReasonImportantFailure
	case tally.FullyMet < len(criteria):
		verdict.Reasoning = ReasonNotFullyMet
	default:
		verdict.Decision = Eligible
		verdict.Reasoning = ReasonAllMet
	}

	return verdict
}

// CountKeywords counts failing and satisfied lines in an evaluation, case-insensitively.
func CountKeywords(evaluation string) Tally {
	var t Tally
	for _, line := range strings.Split(strings.ToLower(evaluation), "\n") {
		failed := strings.Contains(line, "does not meet")
		if failed && strings.Contains(line, "critical") {
			t.CriticalFails++
		}
		if failed && strings.Contains(line, "important") {
			t.ImportantFails++
		}
		if strings.Contains(line, "fully meets") {
			t.FullyMet++
		}
	}
	return t
}
