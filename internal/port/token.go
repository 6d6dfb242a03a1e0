package port

// Claims are the verified contents of a capability token.
type Claims struct {
	CameraID string
	NoCache  bool
}

// TokenVerifier validates a signed capability token and extracts its claims.
// Verification is a pure function of the token and the configured secret;
// an unset secret must fail every token (fail closed).
type TokenVerifier interface {
	Verify(token string) (Claims, error)
}
