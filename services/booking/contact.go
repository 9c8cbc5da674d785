package booking

import (
	"regexp"
	"strings"
)

// Contact validation for the name, email and phone booking steps. All three
// are pure functions; they never mutate state.

var (
	emailRe      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRe      = regexp.MustCompile(`^\+?\d{10,15}$`)
	phoneStripRe = regexp.MustCompile(`[^+\d]`)
)

// ValidateName accepts any trimmed input of at least two characters.
func ValidateName(text string) Outcome {
	name := strings.TrimSpace(text)
	if len(name) < 2 {
		return reject("name too short")
	}
	return accept(name)
}

// ValidateEmail accepts local-part@domain.tld with a top-level segment of at
// least two letters. The value passes through unchanged, casing included.
func ValidateEmail(text string) Outcome {
	email := strings.TrimSpace(text)
	if !emailRe.MatchString(email) {
		return reject("malformed email address")
	}
	return accept(email)
}

// ValidatePhone strips everything except digits and plus signs, then requires
// an optional leading + followed by 10 to 15 digits. A + anywhere but the
// front survives stripping and fails the match, which is intended.
func ValidatePhone(text string) Outcome {
	cleaned := phoneStripRe.ReplaceAllString(text, "")
	if !phoneRe.MatchString(cleaned) {
		return reject("phone must be 10-15 digits")
	}
	return accept(cleaned)
}
