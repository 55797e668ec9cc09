// Package police implements officer accounts: badge login, admin managed
// registration and activation, and the officer roster.
package police

// Officer is a police account. Officers log in with their badge number;
// admin officers manage the roster.
type Officer struct {
	ID       int    `json:"police_id"`
	Badge    int    `json:"police_badge"`
	Password string `json:"police_password,omitempty"`
	Active   bool   `json:"police_active"`
	Admin    bool   `json:"police_admin"`
}

// ValidCredentials reports whether the payload carries a badge and password.
func (o Officer) ValidCredentials() bool {
	return o.Badge != 0 && o.Password != ""
}
