// Package signature enforces a canonical email sign-off derived from the
// authenticated sender, replacing whatever sign-off the model produced.
package signature

import "strings"

// closingPhrases are the recognized sign-off openers, matched
// case-insensitively at their earliest occurrence in the body.
var closingPhrases = []string{
	"best regards,",
	"regards,",
	"sincerely,",
	"thanks,",
	"thank you,",
	"cheers,",
	"warm regards,",
	"kind regards,",
}

// Strip discards everything from the first recognized closing phrase to the
// end of the body. Bodies without a sign-off pass through unchanged.
func Strip(body string) string {
	lower := strings.ToLower(body)

	cut := -1
	for _, phrase := range closingPhrases {
		if idx := strings.Index(lower, phrase); idx >= 0 && (cut < 0 || idx < cut) {
			cut = idx
		}
	}
	if cut < 0 {
		return body
	}
	return strings.TrimRight(body[:cut], " \t\r\n")
}

// Enforce strips any model-authored sign-off and appends the canonical
// signature block for the resolved sender name. The output always ends with
// exactly one signature reflecting the real authenticated identity. Enforce
// is idempotent: the appended block starts with "Best regards," which Strip
// recognizes on a second pass.
func Enforce(body, name string) string {
	return Strip(body) + "\n\nBest regards,\n" + name
}
