package ports

// PasswordHasher is a one-way hash with a constant-time verify.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer issues and verifies stateless session identity tokens bound to a
// user identifier.
type TokenIssuer interface {
	Issue(userID string) (string, error)
	// Verify returns the bound user identifier, or an error when the token is
	// malformed, expired or badly signed.
	Verify(token string) (string, error)
}
