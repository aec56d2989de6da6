package docqa

import (
	"strings"
)

// Intent names.
const (
	IntentQA         = "qa"
	IntentExtraction = "info_extraction"
)

// Extraction targets.
const (
	TargetEmails    = "emails"
	TargetPhones    = "phones"
	TargetPersons   = "persons"
	TargetOrgs      = "orgs"
	TargetLocations = "locations"
	TargetDates     = "dates"
	TargetFullText  = "full_text"
	TargetQA        = "qa"
)

// Intent describes what the user asked for.
type Intent struct {
	Name    string
	Targets []string
	Query   string
}

// Has reports whether the intent includes target.
func (i Intent) Has(target string) bool {
	for _, t := range i.Targets {
		if t == target {
			return true
		}
	}
	return false
}

var questionWords = []string{"who", "what", "when", "where", "why", "how"}

// IsQuestion reports whether text reads as a natural language question.
func IsQuestion(text string) bool {
	q := strings.ToLower(strings.TrimSpace(text))
	if strings.HasSuffix(q, "?") {
		return true
	}
	for _, w := range questionWords {
		if strings.HasPrefix(q, w) {
			return true
		}
	}
	return false
}

// DetectIntent identifies the extraction targets or question in a query.
// Questions win over keyword targets. A query with neither falls back to
// named entity extraction.
func DetectIntent(query string) Intent {
	q := strings.ToLower(query)
	var targets []string

	if containsAny(q, "email", "e-mail") {
		targets = append(targets, TargetEmails)
	}
	if containsAny(q, "phone", "number", "telephone") {
		targets = append(targets, TargetPhones)
	}
	if containsAny(q, "person", "people", "name") {
		targets = append(targets, TargetPersons)
	}
	if containsAny(q, "org", "company", "organisation") {
		targets = append(targets, TargetOrgs)
	}
	if containsAny(q, "location", "city", "country") {
		targets = append(targets, TargetLocations)
	}
	if containsAny(q, "date") {
		targets = append(targets, TargetDates)
	}
	if containsAny(q, "everything", "full text", "all text") {
		targets = append(targets, TargetFullText)
	}

	if IsQuestion(q) {
		return Intent{Name: IntentQA, Targets: []string{TargetQA}, Query: query}
	}

	if len(targets) == 0 {
		targets = []string{TargetPersons, TargetOrgs, TargetLocations, TargetDates}
	}
	return Intent{Name: IntentExtraction, Targets: targets, Query: query}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
