package models

// User is the read model of one row in the external user sheet. The
// password is stored as a bcrypt hash; the plaintext never leaves the
// login handler.
type User struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}
