package model

// Identity is the authenticated user as reported by the login endpoint
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}
