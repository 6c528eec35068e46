package model

// User represents a creator or listener account. IDs are derived from the
// email and stay stable for the process lifetime; accounts are never deleted.
type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	Bio       string
	Followers int
	Following int
}

// Clone returns an independent copy safe to hand across the backend boundary.
func (u User) Clone() User {
	return u
}

// ProfileUpdate carries a partial profile edit. Nil fields are left untouched.
type ProfileUpdate struct {
	Name      *string
	AvatarURL *string
	Bio       *string
}

// Apply merges the update into a user record.
func (p ProfileUpdate) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.AvatarURL != nil {
		u.AvatarURL = *p.AvatarURL
	}
	if p.Bio != nil {
		u.Bio = *p.Bio
	}
}
