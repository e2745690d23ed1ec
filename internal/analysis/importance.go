package analysis

import (
	"encoding/json"
	"strings"
)

// Importance is the tier of an eligibility criterion.
type Importance string

const (
	Critical   Importance = "Critical"
	Important  Importance = "Important"
	NiceToHave Importance = "Nice-to-have"
)

type importanceRule struct {
	level    Importance
	keywords []string
}

// importanceRules are checked in order; the first rule with a matching keyword wins.
var importanceRules = []importanceRule{
	{level: Critical, keywords: []string{"must", "required", "mandatory", "critical"}},
	{level: Important, keywords: []string{"important", "should"}},
	{level: NiceToHave, keywords: []string{"nice", "prefer", "optional"}},
}

// InferImportance guesses the tier of a description from its wording.
// Descriptions without any keyword are Important.
func InferImportance(description string) Importance {
	return classify(description)
}

// NormalizeImportance maps a free-form importance label to a canonical tier.
// Unrecognized labels are Important.
func NormalizeImportance(label string) Importance {
	return classify(label)
}

func classify(text string) Importance {
	text = strings.ToLower(text)
	for _, rule := range importanceRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.level
			}
		}
	}
	return Important
}

// UnmarshalJSON normalizes any label into a canonical tier.
func (i *Importance) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*i = NormalizeImportance(raw)
	return nil
}

// Class returns a CSS-friendly identifier for the tier.
func (i Importance) Class() string {
	switch i {
	case Critical:
		return "critical"
	case NiceToHave:
		return "nicetohave"
	default:
		return "important"
	}
}
