package core

import (
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// Identity prefixes for the two record families.
const (
	VolunteerPrefix = "VOL"
	RequestPrefix   = "REQ"
)

// Volunteer lifecycle states.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// RequestTypeRemote marks a request that can be served without travel.
// Any other request type is treated as in-person.
const (
	RequestTypeRemote   = "Remote"
	RequestTypeInPerson = "InPerson"
)

// Transportation availability values.
const (
	TransportationYes = "Yes"
	TransportationNo  = "No"
)

// Willingness-to-travel values.
const (
	WillingnessHigh     = "High"
	WillingnessModerate = "Moderate"
	WillingnessLow      = "Low"
)

// Fingerprint is a deterministic 64-bit digest of text content.
type Fingerprint uint64

// FingerprintOf hashes text content with BLAKE2b.
// Identical content always produces identical fingerprints.
func FingerprintOf(text string) Fingerprint {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Fingerprint(binary.LittleEndian.Uint64(sum))
}

// Volunteer is a person who can be matched to help requests.
// Every text field is a plain string (never a missing-value sentinel) and
// Rating is always a number once the record has passed NormalizeVolunteer.
type Volunteer struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	ContactInformation    string  `json:"contact_information"`
	Location              string  `json:"location"`
	Skills                string  `json:"skills"`
	LanguagesSpoken       string  `json:"languages_spoken"`        // delimited, e.g. "English,Spanish"
	PreferredServiceAreas string  `json:"preferred_service_areas"` // free text
	Rating                float64 `json:"rating"`                  // 0-5
	Status                string  `json:"status"`
	Transportation        string  `json:"transportation"` // Yes / No
	WillingnessToTravel   string  `json:"willingness_to_travel"`
}

// IsActive reports whether the volunteer is eligible for matching.
func (v *Volunteer) IsActive() bool {
	return v.Status == StatusActive
}

// CorpusText is the text a volunteer contributes to lexical and semantic matching.
func (v *Volunteer) CorpusText() string {
	return v.Skills + " " + v.PreferredServiceAreas
}

// HelpRequest is a request for assistance raised by a requestor.
type HelpRequest struct {
	ID                  string  `json:"id"`
	Category            string  `json:"category"`
	Location            string  `json:"location"`
	RequestType         string  `json:"request_type"` // Remote / InPerson
	PriorityLevel       string  `json:"priority_level"`
	LeadVolunteerNeeded string  `json:"lead_volunteer_needed"`
	ForSelfOrOthers     string  `json:"for_self_or_others"`
	IsCalamity          string  `json:"is_calamity"`
	Subject             string  `json:"subject"`
	Description         string  `json:"description"`
	LanguagePreferred   string  `json:"language_preferred"`
	RequestorID         string  `json:"requestor_id"`
	Status              string  `json:"status"`
	Duration            float64 `json:"duration"`
	AssignedVolunteer   string  `json:"assigned_volunteer"`
	ExternalID          string  `json:"external_id,omitempty"` // upstream system id, opaque
}

// IsRemote reports whether the request can be served remotely.
func (r *HelpRequest) IsRemote() bool {
	return r.RequestType == RequestTypeRemote
}

// QueryText is the text matched against volunteer corpora.
func (r *HelpRequest) QueryText() string {
	return r.Category + " " + r.Subject + " " + r.Description
}
