package domain

// Principal is the identity decoded from a verified bearer token.
type Principal struct {
	UserID int64
	Email  string
	Role   Role
}
