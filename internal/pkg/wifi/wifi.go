package wifi

import "strings"

// Normalize strips surrounding whitespace and the quote characters some
// platforms wrap around a reported SSID.
func Normalize(ssid string) string {
	s := strings.TrimSpace(ssid)
	for len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			s = s[1 : len(s)-1]
			continue
		}
		break
	}
	return s
}

// IsAdmitted reports whether the device's current network is on the
// organization's allow-list. An absent SSID (not connected, or permission
// not granted) is always a refusal.
func IsAdmitted(currentSSID string, allowedSSIDs []string) bool {
	current := Normalize(currentSSID)
	if current == "" {
		return false
	}
	for _, allowed := range allowedSSIDs {
		if Normalize(allowed) == current {
			return true
		}
	}
	return false
}
