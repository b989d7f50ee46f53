package utils

import (
	"fmt"
	"strings"
	"time"
)

// DeriveUsername builds a username from the local part of an email address
// suffixed with the unix timestamp, e.g. "ram@example.com" -> "ram_1735689600".
// The suffix keeps usernames unique across users sharing an email prefix.
func DeriveUsername(email string, now time.Time) string {
	local := email
	if idx := strings.Index(email, "@"); idx >= 0 {
		local = email[:idx]
	}
	return fmt.Sprintf("%s_%d", local, now.Unix())
}
