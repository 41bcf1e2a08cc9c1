package ratelimit

import (
	"net/http"
	"regexp"
)

// POST .../chatroom/{id}/message or .../chatrooms/{id}/message
var gatedPath = regexp.MustCompile(`^(?:.*/)?chatrooms?/[^/]+/message/?$`)

// reports whether a request is a chatroom message send
func IsGatedRoute(method, path string) bool {
	return method == http.MethodPost && gatedPath.MatchString(path)
}
