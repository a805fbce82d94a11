package dedupe

import "strings"

// KeySeparator joins key fields. It is a control character so it cannot appear in an IP, an id or a validated tag.
const KeySeparator = "\x1f"

// Key builds a compound key such as requester, target and action.
func Key(fields ...string) string {
	return strings.Join(fields, KeySeparator)
}
