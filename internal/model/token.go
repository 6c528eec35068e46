package model

// TokenManager mints and validates opaque session tokens.
type TokenManager interface {
	Mint(email string) (string, error)
	Parse(token string) (email string, err error)
}
