package auth

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserInfo is returned on a successful login. It never carries credential material.
type UserInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
