package report

import (
	"fmt"
	"time"
)

// Submission is the untrusted payload a user connection sends over the live
// channel. Integer fields are pointers so a missing field is distinguishable
// from a zero value.
type Submission struct {
	Date    string `json:"report_date"`
	Details string `json:"report_details"`
	UserID  *int   `json:"report_user"`
	TypeID  *int   `json:"report_type"`
	VenueID *int   `json:"report_venue"`
}

// Valid reports whether all five required fields are present. Referential
// integrity is left to the persistence layer.
func (s Submission) Valid() bool {
	return s.Date != "" && s.Details != "" && s.UserID != nil && s.TypeID != nil && s.VenueID != nil
}

// dateLayouts accepted for report_date. The first matches what the mobile
// clients send (ISO-8601 without zone), the second full RFC 3339.
var dateLayouts = []string{"2006-01-02T15:04:05", time.RFC3339}

// ParsedDate parses the submission timestamp.
func (s Submission) ParsedDate() (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s.Date); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable report date %q", s.Date)
}

// Enriched is the denormalized, human readable form of a persisted report,
// joined against the user, crime and venue catalogs.
type Enriched struct {
	ID       int        `json:"report_id"`
	Date     string     `json:"report_date"`
	Phone    string     `json:"report_phone"`
	Details  string     `json:"report_details"`
	User     string     `json:"report_user"`
	Type     string     `json:"report_type"`
	Severity int        `json:"report_severity"`
	Venue    string     `json:"report_venue"`
	Location [2]float64 `json:"report_location"`
	Resolved bool       `json:"resolved"`
}

// Messages used on the wire. Clients match on these strings.
const (
	MsgReportMade     = "Report Made"
	MsgUnableToReport = "Unable to report"
	MsgNewReport      = "New Report"
)
