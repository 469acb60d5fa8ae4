package analytics

import "strings"

// UserAgentFamily maps a raw User-Agent to a coarse browser family. The raw
// string is dropped after classification; only the family is ever stored.
func UserAgentFamily(ua string) string {
	ua = strings.ToLower(ua)

	switch {
	case ua == "":
		return ""
	case strings.Contains(ua, "bot"),
		strings.Contains(ua, "crawler"),
		strings.Contains(ua, "spider"):
		return "Bot"
	case strings.Contains(ua, "edg/"):
		return "Edge"
	case strings.Contains(ua, "opr/"), strings.Contains(ua, "opera"):
		return "Opera"
	case strings.Contains(ua, "firefox"):
		return "Firefox"
	case strings.Contains(ua, "chrome"):
		return "Chrome"
	case strings.Contains(ua, "safari"):
		return "Safari"
	default:
		return "Other"
	}
}
