package domain

// User is the authenticated reviewer identity returned by the login flow.
type User struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
