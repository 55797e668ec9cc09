// Package venue implements the venue catalog: listing and search for
// clients, roster management for police, and crime severity aggregates.
package venue

// Venue is a monitored location. Latitude and longitude are pointers on the
// way in so the add handler can tell a missing coordinate from zero.
type Venue struct {
	ID     int      `json:"venue_id"`
	Name   string   `json:"venue_name"`
	Lat    *float64 `json:"venue_lat"`
	Long   *float64 `json:"venue_long"`
	City   string   `json:"venue_city"`
	Active bool     `json:"venue_active"`
}

// ValidNew reports whether the payload carries everything a new venue needs.
func (v Venue) ValidNew() bool {
	return v.Name != "" && v.City != "" && v.Lat != nil && v.Long != nil
}

// Severity is the average crime severity aggregate reported per venue.
type Severity struct {
	Average float64 `json:"average_severity"`
}
