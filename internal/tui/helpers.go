package tui

import (
	"errors"
	"time"
	"unicode/utf8"

	"github.com/samroche/recyco/pkg/client"
)

// formatDate renders a timestamp the way the site did: dd/mm/yyyy.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006")
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}

// sessionExpired reports whether err means the stored credentials are no
// longer usable and the user has to log in again.
func sessionExpired(err error) bool {
	return errors.Is(err, client.ErrSessionExpired)
}

// loginHint is the status shown whenever a call dies on an expired session.
const loginHint = "session expired -- run: recyco login"
