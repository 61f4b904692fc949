package validation

import "regexp"

var (
	htmlTagPattern = regexp.MustCompile(`<[^>]+>`)
	scriptPattern  = regexp.MustCompile(`(?i)(javascript:|on\w+\s*=|<\s*script)`)
)

// ContainsHTML reports whether a user-supplied string carries HTML tags or
// script vectors. Blank values pass; presence is the required tag's job.
func ContainsHTML(value string) bool {
	if value == "" {
		return false
	}
	return htmlTagPattern.MatchString(value) || scriptPattern.MatchString(value)
}
