package domain

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Identity is the caller on whose behalf an operation runs. The zero value is
// the guest identity.
type Identity struct {
	UserID   string
	Username string
}

// Guest returns the anonymous identity. Guests get every feature but nothing
// is persisted for them.
func Guest() Identity {
	return Identity{}
}

func IdentityOf(u *User) Identity {
	return Identity{UserID: u.ID, Username: u.Username}
}

func (i Identity) IsGuest() bool {
	return i.UserID == ""
}

// DisplayName is the username, or "guest".
func (i Identity) DisplayName() string {
	if i.IsGuest() {
		return "guest"
	}
	return i.Username
}
