package models

// User is the account row. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	Id       string
	Email    string
	Password string
}

type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}
