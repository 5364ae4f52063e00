package domain

import "errors"

var (
	ErrLinkNotFound     = errors.New("link not found")
	ErrLinkExpired      = errors.New("link expired")
	ErrLinkInactive     = errors.New("link inactive")
	ErrScanLimitReached = errors.New("scan limit reached")

	// Password gate errors. ErrPasswordInvalid is local input validation
	// (empty or over-length); ErrPasswordIncorrect is a failed match.
	ErrPasswordRequired  = errors.New("password required")
	ErrPasswordInvalid   = errors.New("invalid password input")
	ErrPasswordIncorrect = errors.New("incorrect password")
)
