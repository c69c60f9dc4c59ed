package psdb

import "errors"

var (
	ErrBadDB    = errors.New("db uninitialized, use New()")
	ErrNoHasher = errors.New("no hasher provided")

	ErrEmptyHost    = errors.New("empty hostname")
	ErrHostTooLong  = errors.New("hostname exceeds 255 octets")
	ErrLabelTooLong = errors.New("label exceeds 63 octets")
	ErrEmptyLabel   = errors.New("empty label in hostname")
	ErrBadLabel     = errors.New("label failed IDNA mapping")

	ErrBadList = errors.New("malformed public suffix list")

	ErrNoSuffix = errors.New("no rule matched the hostname")
	ErrNoRoot   = errors.New("hostname is a public suffix itself")
)
