package auth

// TokenStatus classifies the result of validating a token. The filter
// maps each status to a response shape; Classify only reports
// cryptographic and date facts.
type TokenStatus = string

const (
	// TokenStatusPass means signature and expiry both check out.
	TokenStatusPass TokenStatus = "PASS"
	// TokenStatusExpired means the signature verifies but the token is
	// past its expiry.
	TokenStatusExpired TokenStatus = "EXPIRED"
	// TokenStatusInvalid covers missing tokens, signature mismatches
	// and malformed structures.
	TokenStatusInvalid TokenStatus = "INVALID"
	// TokenStatusUnsupported marks tokens using an algorithm or format
	// we do not accept.
	TokenStatusUnsupported TokenStatus = "UNSUPPORTED"
)
