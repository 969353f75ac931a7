package models

// User is a credential placeholder. No authentication flow reads it.
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
	ID       int64  `json:"id"`
}

// UserInput is the shape accepted when creating a user.
type UserInput struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}
