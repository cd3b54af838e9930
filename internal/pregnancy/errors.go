package pregnancy

import "errors"

// ErrInfoNotFound signals that the user has not set up pregnancy info yet.
var ErrInfoNotFound = errors.New("pregnancy info not found")
