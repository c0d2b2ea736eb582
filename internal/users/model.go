package users

// User is the public view of a stored account. It never carries a password.
type User struct {
	UserName string
	Salt     string
	Verifier []byte
}
