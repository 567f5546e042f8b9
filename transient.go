package manfetch

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	networkKeywords    = []string{"timeout", "timed out", "connection", "dns", "resolve", "network"}
	validationKeywords = []string{"not a pdf", "validation"}

	serverErrorRe = regexp.MustCompile(`\b(500|502|503|504)\b`)
	clientErrorRe = regexp.MustCompile(`\b(401|403|404)\b`)
)

// IsTransient reports whether a failure is worth retrying. Rules are checked
// in order and the first match wins:
//
//  1. network-ish wording (timeout, connection, DNS, ...) is transient
//  2. a 500/502/503/504 status is transient
//  3. a 401/403/404 status is permanent
//  4. a validation failure ("not a PDF") is permanent
//  5. anything else is transient
//
// A non-zero code is treated as if it appeared in the message.
func IsTransient(message string, code int) bool {
	text := strings.ToLower(message)
	if code != 0 {
		text += " " + strconv.Itoa(code)
	}

	for _, kw := range networkKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	if serverErrorRe.MatchString(text) {
		return true
	}
	if clientErrorRe.MatchString(text) {
		return false
	}
	for _, kw := range validationKeywords {
		if strings.Contains(text, kw) {
			return false
		}
	}

	// Unknown failures cost one extra attempt; treating them as permanent
	// would abandon fetches that might have recovered.
	return true
}

// IsTransientError classifies err with IsTransient.
// ENOTPDF and EINVALID errors are always permanent.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	switch ErrorCode(err) {
	case ENOTPDF, EINVALID:
		return false
	}
	return IsTransient(err.Error(), StatusCode(err))
}
