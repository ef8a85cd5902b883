package listing

import "errors"

var (
	ErrNotFound       = errors.New("garage sale not found")
	ErrForbidden      = errors.New("not the owner of this garage sale")
	ErrInvalidQuery   = errors.New("invalid search query")
	ErrInvalidListing = errors.New("invalid garage sale")
	ErrQuotaExceeded  = errors.New("monthly listing limit reached")
)
