package auth

import "strings"

// ResolveOrigin decides the Access-Control-Allow-Origin value for a request.
// The allow-list is an exact-match comma list; "*" (or empty) allows all.
// An empty value with rejected=false means the header is simply omitted
// (origin absent from the request); rejected=true means the supplied origin
// is not on the list and the request must be refused.
func ResolveOrigin(allowed, origin string) (value string, rejected bool) {
	allowed = strings.TrimSpace(allowed)
	if allowed == "" || allowed == "*" {
		return "*", false
	}
	if origin == "" {
		return "", false
	}
	for _, entry := range strings.Split(allowed, ",") {
		if strings.TrimSpace(entry) == origin {
			return origin, false
		}
	}
	return "", true
}
