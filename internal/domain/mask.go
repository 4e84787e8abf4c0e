package domain

// MaskValue replaces secrets in persisted artifacts.
const MaskValue = "********"

const tokenPrefixLen = 8

// TokenPrefix returns a short displayable prefix of an access token.
// The full token never reaches stdout or report files.
func TokenPrefix(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= tokenPrefixLen {
		return MaskValue
	}
	return token[:tokenPrefixLen] + "..."
}
