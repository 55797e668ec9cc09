// Package user implements account registration, activation, login and
// password management for report submitters.
package user

// Account is a submitter account. The password field carries the plaintext
// on requests and the bcrypt hash inside the storage layer; handlers clear
// it before an account goes back on the wire.
type Account struct {
	ID       int    `json:"user_id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Phone    string `json:"user_phone"`
	Email    string `json:"user_email"`
	DOB      string `json:"dob"`
	NHS      string `json:"nhs_number"`
	Password string `json:"user_password,omitempty"`
	Gender   string `json:"gender"`
	Active   bool   `json:"active"`
}

// ValidRegistration reports whether all fields required to create an
// account are present.
func (a Account) ValidRegistration() bool {
	return a.Name != "" && a.Surname != "" && a.Phone != "" && a.Email != "" &&
		a.DOB != "" && a.NHS != "" && a.Password != "" && a.Gender != ""
}

// ValidCredentials reports whether the payload carries a login pair.
func (a Account) ValidCredentials() bool {
	return a.Email != "" && a.Password != ""
}
