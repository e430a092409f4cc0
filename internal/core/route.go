package core

import "strings"

// Route decides which scoring path handles an input. Anything that looks
// like an address and does not start like a URL goes to the email path.
func Route(input string) InputType {
	trimmed := strings.TrimSpace(input)
	if strings.Contains(trimmed, "@") &&
		!strings.HasPrefix(trimmed, "http") &&
		!strings.HasPrefix(trimmed, "www") {
		return TypeEmail
	}
	return TypeURL
}

// NormalizeURL trims the input and prefixes https:// unless an http(s)
// scheme is already present.
func NormalizeURL(input string) string {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		return trimmed
	}
	return "https://" + trimmed
}
