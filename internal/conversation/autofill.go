package conversation

import "strings"

// Auto-fill markers, as instructed in the system prompt. The model's output is
// untrusted free text; everything here is defensive about absent or malformed
// markers.
const (
	AutoFillOpenMarker  = "[AUTO_FILL]"
	AutoFillCloseMarker = "[/AUTO_FILL]"
)

// Recognized auto-fill keys. The parser stores any key it finds; consumers
// only read these three.
const (
	AutoFillKeyDate    = "DATE"
	AutoFillKeyProgram = "PROGRAM"
	AutoFillKeyTime    = "TIME"
)

// AutoFillConfirmation is appended to the visible reply when a block was
// detected and stripped.
const AutoFillConfirmation = "I have pre-filled the reservation form with your selection. Please review it and submit."

// ParseAutoFill extracts the auto-fill block from an assistant reply. Returns
// nil when either marker is absent; that is not an error, just "no auto-fill
// requested". Each line inside the block is split on its FIRST colon only, so
// values such as time ranges keep their own colons. Lines without a colon are
// ignored.
func ParseAutoFill(reply string) map[string]string {
	open := strings.Index(reply, AutoFillOpenMarker)
	if open < 0 {
		return nil
	}
	rest := reply[open+len(AutoFillOpenMarker):]
	closeIdx := strings.Index(rest, AutoFillCloseMarker)
	if closeIdx < 0 {
		return nil
	}

	fields := make(map[string]string)
	for _, line := range strings.Split(rest[:closeIdx], "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return fields
}

// StripAutoFill removes the opening marker and everything after it from the
// text shown to the user.
func StripAutoFill(reply string) string {
	open := strings.Index(reply, AutoFillOpenMarker)
	if open < 0 {
		return reply
	}
	return strings.TrimRight(reply[:open], " \n\t")
}
