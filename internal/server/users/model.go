package users

import "time"

// User is one registered account. PasswordHash is the hex-encoded SHA-256
// digest of the password; see HashPassword.
type User struct {
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}
