package utils

import (
	"regexp"
	"strings"
)

// kentekenPattern matches a normalized Dutch license plate: 4 to 8
// uppercase letters or digits.
var kentekenPattern = regexp.MustCompile(`^[A-Z0-9]{4,8}$`)

// NormalizeKenteken converts a license plate to its canonical form:
// uppercase with all dashes removed. Other separators (spaces, dots)
// are left in place and will fail validation instead.
func NormalizeKenteken(kenteken string) string {
	return strings.ToUpper(strings.ReplaceAll(kenteken, "-", ""))
}

// IsValidKenteken reports whether the plate has a valid format after
// normalization.
func IsValidKenteken(kenteken string) bool {
	return kentekenPattern.MatchString(NormalizeKenteken(kenteken))
}
