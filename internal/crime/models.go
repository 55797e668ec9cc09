// Package crime implements the crime type catalog reports are classified
// against.
package crime

// Crime is a reportable crime type with its severity weight. Severity is a
// pointer on the way in so the add handler can tell a missing value from
// zero.
type Crime struct {
	ID          int    `json:"crime_id"`
	Name        string `json:"crime_name"`
	Description string `json:"crime_description"`
	Severity    *int   `json:"crime_severity"`
	Active      bool   `json:"crime_active"`
}

// ValidNew reports whether the payload carries everything a new crime type
// needs.
func (c Crime) ValidNew() bool {
	return c.Name != "" && c.Description != "" && c.Severity != nil
}
