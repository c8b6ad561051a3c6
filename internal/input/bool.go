package input

import "strings"

// ParseBool converts a human answer to a boolean. Accepted, case-insensitive:
// t, true, y, yes and f, false, n, no. Surrounding space is ignored.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "true", "y", "yes":
		return true, nil
	case "f", "false", "n", "no":
		return false, nil
	}
	return false, badArgument("Unable to parse %q to valid boolean value.", s)
}
