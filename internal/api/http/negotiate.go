package http

import (
	"mime"
	"strings"
)

// acceptable reports whether the Accept header allows one of offered. A
// missing header accepts anything.
func acceptable(header string, offered []string) bool {
	if strings.TrimSpace(header) == "" {
		return true
	}
	for _, part := range strings.Split(header, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if mediaType == "*/*" {
			return true
		}
		for _, o := range offered {
			if mediaType == o {
				return true
			}
			if strings.HasSuffix(mediaType, "/*") && strings.HasPrefix(o, strings.TrimSuffix(mediaType, "*")) {
				return true
			}
		}
	}
	return false
}
