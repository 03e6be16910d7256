package model

// UserRole is carried in the access token issued by the auth provider.
type UserRole string

const (
	Student UserRole = "student"
	Admin   UserRole = "admin"
)
