package soundboard

import "strconv"

// repeatCount reads an optional repeat argument. Anything that does not
// parse as an integer strictly between 0 and 50 falls back to the
// command's default; a bad count is never an error, just ignored.
func repeatCount(args []string, fallback int) int {
	if len(args) == 0 {
		return fallback
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 || n >= 50 {
		return fallback
	}
	return n
}
