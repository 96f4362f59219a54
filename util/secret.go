package util

import "net/url"

// MaskSecret keeps the first visiblePrefix bytes of s and masks the rest.
func MaskSecret(s string, visiblePrefix int) string {
	if len(s) <= visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}

// RedactURI masks the password of a connection string so it can be logged.
// Unparseable input is masked entirely.
func RedactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return MaskSecret(raw, 0)
	}
	return u.Redacted()
}
