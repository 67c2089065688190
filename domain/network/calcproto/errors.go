package calcproto

import "errors"

var (
	ErrMalformedRecord = errors.New("malformed record")
)
