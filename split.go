package psdb

import (
	"fmt"
	"unicode/utf8"

	"github.com/koykov/fastconv"
	"golang.org/x/net/idna"
)

// DNS wire bounds, see RFC 1035.
const (
	maxHostLen  = 255
	maxLabelLen = 63
)

// Non-strict lookup profile: maps and casefolds, converts Unicode labels
// to punycode, admits service labels like "_tcp". Host syntax beyond
// label structure is deliberately not validated here.
var idnaProfile = idna.New(idna.MapForLookup(), idna.StrictDomainName(false))

// Normalize lowercases hostname into a fresh buffer, strips a single
// trailing root dot, maps non-ASCII input to its ASCII form and splits
// it into labels, enforcing DNS length bounds. Offs holds the start
// position of every label, left to right.
func normalize(hostname []byte) (norm []byte, offs []int, err error) {
	hl := len(hostname)
	if hl == 0 {
		err = ErrEmptyHost
		return
	}
	if hostname[hl-1] == '.' {
		if hl--; hl == 0 {
			err = ErrEmptyHost
			return
		}
		hostname = hostname[:hl]
	}

	ascii := true
	norm = make([]byte, hl)
	for i := 0; i < hl; i++ {
		c := hostname[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c >= utf8.RuneSelf {
			ascii = false
		}
		norm[i] = c
	}
	if !ascii {
		var s string
		if s, err = idnaProfile.ToASCII(fastconv.B2S(hostname)); err != nil {
			err = fmt.Errorf("%w: %s", ErrBadLabel, err.Error())
			return
		}
		norm = fastconv.S2B(s)
	}

	if len(norm) > maxHostLen {
		err = ErrHostTooLong
		return
	}
	offs = make([]int, 0, 8)
	offs = append(offs, 0)
	lo := 0
	for i := 0; i < len(norm); i++ {
		if norm[i] != '.' {
			continue
		}
		if i == lo {
			err = ErrEmptyLabel
			return
		}
		if i-lo > maxLabelLen {
			err = ErrLabelTooLong
			return
		}
		lo = i + 1
		offs = append(offs, lo)
	}
	if len(norm) == lo {
		err = ErrEmptyLabel
		return
	}
	if len(norm)-lo > maxLabelLen {
		err = ErrLabelTooLong
		return
	}
	return
}

// ToUnicode converts a normalized ASCII hostname part back to its
// Unicode presentation form.
func ToUnicode(p []byte) ([]byte, error) {
	s, err := idna.ToUnicode(fastconv.B2S(p))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadLabel, err.Error())
	}
	return fastconv.S2B(s), nil
}

// ToUnicodeStr converts a normalized ASCII hostname part back to its
// Unicode presentation form.
func ToUnicodeStr(s string) (string, error) {
	u, err := idna.ToUnicode(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrBadLabel, err.Error())
	}
	return u, nil
}
