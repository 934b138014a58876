package models

import "time"

// User is a stored account. PasswordHash holds a cryptox digest and must
// never be sent to clients or written to logs.
type User struct {
	ID           string
	UserName     string
	PasswordHash string
	Favourites   []string
	CreatedAt    time.Time
}
