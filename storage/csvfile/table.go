package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/poiesic/helpmatch/core"
)

// Column headers, in file order.
var (
	VolunteerHeader = []string{
		"VOL_ID", "VolunteerName", "ContactInformation", "Location",
		"Skills", "LanguagesSpoken", "PreferredServiceAreas",
		"Rating", "Status", "TransportationAvailability", "WillingnessToTravel",
	}

	RequestHeader = []string{
		"RequestId", "RequestCategory", "Location", "RequestType",
		"PriorityLevel", "LeadVolunteerNeeded", "ForSelfOrOthers",
		"IsCalamity", "Subject", "Description", "LanguagePreferred",
		"RequestorId", "Status", "Duration", "AssignedVolunteer", "REQ_ID",
	}
)

// row resolves cells by column name. Missing columns and short rows read as "".
type row struct {
	columns map[string]int
	cells   []string
}

func (r row) get(name string) string {
	i, ok := r.columns[name]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// readTable reads a header line and calls fn for every following row.
// An empty input is an empty table.
func readTable(in io.Reader, fn func(row) error) error {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedTable, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedTable, err)
		}
		if err := fn(row{columns: columns, cells: cells}); err != nil {
			return err
		}
	}
}

// ReadVolunteers parses a volunteer table. Every row is normalized.
func ReadVolunteers(in io.Reader) ([]*core.Volunteer, error) {
	var volunteers []*core.Volunteer
	err := readTable(in, func(r row) error {
		volunteers = append(volunteers, core.NormalizeVolunteer(&core.Volunteer{
			ID:                    r.get("VOL_ID"),
			Name:                  r.get("VolunteerName"),
			ContactInformation:    r.get("ContactInformation"),
			Location:              r.get("Location"),
			Skills:                r.get("Skills"),
			LanguagesSpoken:       r.get("LanguagesSpoken"),
			PreferredServiceAreas: r.get("PreferredServiceAreas"),
			Rating:                core.ParseNumber(r.get("Rating")),
			Status:                r.get("Status"),
			Transportation:        r.get("TransportationAvailability"),
			WillingnessToTravel:   r.get("WillingnessToTravel"),
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return volunteers, nil
}

// ReadRequests parses a help request table. Every row is normalized.
func ReadRequests(in io.Reader) ([]*core.HelpRequest, error) {
	var requests []*core.HelpRequest
	err := readTable(in, func(r row) error {
		requests = append(requests, core.NormalizeHelpRequest(&core.HelpRequest{
			ID:                  r.get("REQ_ID"),
			ExternalID:          r.get("RequestId"),
			Category:            r.get("RequestCategory"),
			Location:            r.get("Location"),
			RequestType:         r.get("RequestType"),
			PriorityLevel:       r.get("PriorityLevel"),
			LeadVolunteerNeeded: r.get("LeadVolunteerNeeded"),
			ForSelfOrOthers:     r.get("ForSelfOrOthers"),
			IsCalamity:          r.get("IsCalamity"),
			Subject:             r.get("Subject"),
			Description:         r.get("Description"),
			LanguagePreferred:   r.get("LanguagePreferred"),
			RequestorID:         r.get("RequestorId"),
			Status:              r.get("Status"),
			Duration:            core.ParseNumber(r.get("Duration")),
			AssignedVolunteer:   r.get("AssignedVolunteer"),
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// WriteVolunteers writes a volunteer table with VolunteerHeader.
func WriteVolunteers(out io.Writer, volunteers []*core.Volunteer) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(VolunteerHeader); err != nil {
		return err
	}
	for _, v := range volunteers {
		err := writer.Write([]string{
			v.ID, v.Name, v.ContactInformation, v.Location,
			v.Skills, v.LanguagesSpoken, v.PreferredServiceAreas,
			formatNumber(v.Rating), v.Status, v.Transportation, v.WillingnessToTravel,
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteRequests writes a help request table with RequestHeader.
func WriteRequests(out io.Writer, requests []*core.HelpRequest) error {
	writer := csv.NewWriter(out)
	if err := writer.Write(RequestHeader); err != nil {
		return err
	}
	for _, r := range requests {
		err := writer.Write([]string{
			r.ExternalID, r.Category, r.Location, r.RequestType,
			r.PriorityLevel, r.LeadVolunteerNeeded, r.ForSelfOrOthers,
			r.IsCalamity, r.Subject, r.Description, r.LanguagePreferred,
			r.RequestorID, r.Status, formatNumber(r.Duration), r.AssignedVolunteer, r.ID,
		})
		if err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
