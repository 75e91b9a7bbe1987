package actuator

import "strings"

// MatchesDeviceName reports whether a discovered device name matches the
// configured target. Matching is approximate: case-insensitive substring in
// either direction, so "echo show" matches "Echo Show 5" and vice versa.
// Matches are not guaranteed unique; callers take the first match.
func MatchesDeviceName(candidate, target string) bool {
	candidate = strings.ToLower(strings.TrimSpace(candidate))
	target = strings.ToLower(strings.TrimSpace(target))
	if candidate == "" || target == "" {
		return false
	}
	return strings.Contains(candidate, target) || strings.Contains(target, candidate)
}

// ClampPercent clamps a volume percentage into [0,100].
func ClampPercent(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
