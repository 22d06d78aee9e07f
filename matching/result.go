package matching

import "github.com/poiesic/helpmatch/core"

// Status explains an Outcome.
type Status int

const (
	// StatusMatched means active candidates were scored and ranked.
	StatusMatched Status = iota

	// StatusRequestNotFound means the request ID is unknown.
	StatusRequestNotFound

	// StatusNoActiveVolunteers means the pool had no active volunteer.
	StatusNoActiveVolunteers
)

func (s Status) String() string {
	switch s {
	case StatusMatched:
		return "matched"
	case StatusRequestNotFound:
		return "request_not_found"
	case StatusNoActiveVolunteers:
		return "no_active_volunteers"
	default:
		return "unknown"
	}
}

// MarshalText renders the status by name in JSON output.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// MatchResult is one ranked candidate with its component scores.
// Component scores are reported as computed, before clamping.
type MatchResult struct {
	Volunteer      *core.Volunteer `json:"volunteer"`
	Lexical        float64         `json:"lexical_similarity"`
	Semantic       float64         `json:"semantic_similarity"`
	TextSimilarity float64         `json:"text_similarity"`
	SkillAffinity  float64         `json:"skill_affinity"`
	LanguageMatch  float64         `json:"language_match"`
	LocationScore  float64         `json:"location_score"`
	Score          float64         `json:"final_score"`
}

// Outcome is the result of one match call.
type Outcome struct {
	RequestID string         `json:"request_id"`
	Status    Status         `json:"status"`
	Results   []*MatchResult `json:"matches"`
}

// Message is a human-readable explanation of an empty outcome.
// It is empty when candidates were found.
func (o *Outcome) Message() string {
	switch o.Status {
	case StatusRequestNotFound:
		return "request not found"
	case StatusNoActiveVolunteers:
		return "no active volunteers found"
	default:
		return ""
	}
}

// VolunteerIDs returns the ranked volunteer identities.
func (o *Outcome) VolunteerIDs() []string {
	ids := make([]string, len(o.Results))
	for i, r := range o.Results {
		ids[i] = r.Volunteer.ID
	}
	return ids
}
