package likes

import "errors"

// ErrPostNotFound indicates the post being liked doesn't exist
var ErrPostNotFound = errors.New("post not found")
