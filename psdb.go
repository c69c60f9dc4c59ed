package psdb

import (
	"bytes"
	"sync/atomic"

	"github.com/koykov/hash"
	"github.com/koykov/policy"
)

const (
	FullURL = "https://raw.githubusercontent.com/publicsuffix/list/master/public_suffix_list.dat"
)

const (
	statusNil = iota
	statusActive
)

// Flags control rule candidacy and fallback behavior per lookup.
type Flags uint8

const (
	// FlagICANNOnly excludes PRIVATE section rules from matching.
	FlagICANNOnly Flags = 1 << iota
	// FlagStrict disables the implicit one-label rule; lookups with no
	// explicit match fail with ErrNoSuffix instead of guessing.
	FlagStrict
	// FlagPreferICANN reports the ICANN section when a sequence carries
	// rules of both sections at the winning length.
	FlagPreferICANN
)

// Result is the decomposition of a hostname around its public suffix.
//
// Suffix is the public suffix (eTLD). Root is the registrable domain
// (eTLD+1); empty when the hostname is a suffix itself. Sub holds the
// remaining labels left of Root; empty when there are none. All three
// alias one per-call normalized buffer, so joining Sub and Root with a
// dot reproduces the normalized hostname exactly.
type Result struct {
	Suffix, Root, Sub []byte
	// ICANN reports whether the winning rule came from the ICANN section.
	ICANN bool
	// Known reports whether an explicit rule matched; false means the
	// implicit one-label rule produced the suffix.
	Known bool
}

type DB struct {
	policy.RWLock
	status uint32
	hasher hash.BHasher
	index  index
	buf    []byte
	// Deepest rule's label count; bounds the candidate walk.
	depth int
}

var (
	bSpace        = []byte(" ")
	bDot          = []byte(".")
	bMaskAll      = []byte("*.")
	bBeginICANN   = []byte("// ===BEGIN ICANN DOMAINS===")
	bEndICANN     = []byte("// ===END ICANN DOMAINS===")
	bBeginPrivate = []byte("// ===BEGIN PRIVATE DOMAINS===")
	bEndPrivate   = []byte("// ===END PRIVATE DOMAINS===")
)

func New(hasher hash.BHasher) (*DB, error) {
	if hasher == nil {
		return nil, ErrNoHasher
	}
	db := &DB{
		status: statusActive,
		hasher: hasher,
		index:  make(index),
	}
	return db, nil
}

// Parse classifies hostname with default flags: PRIVATE rules included,
// implicit one-label fallback enabled.
func (db *DB) Parse(hostname []byte) (Result, error) {
	return db.Lookup(hostname, 0)
}

// Lookup classifies hostname into public suffix, registrable domain and
// subdomain according to the loaded rule set and given flags.
func (db *DB) Lookup(hostname []byte, flags Flags) (r Result, err error) {
	if err = db.checkStatus(); err != nil {
		return
	}
	var norm []byte
	var offs []int
	if norm, offs, err = normalize(hostname); err != nil {
		return
	}

	db.RLock()
	sufIdx, f := db.match(norm, offs, flags)
	db.RUnlock()

	n := len(offs)
	if sufIdx < 0 {
		if flags&FlagStrict != 0 {
			err = ErrNoSuffix
			return
		}
		sufIdx = n - 1
	} else {
		r.Known = true
		icann := f & fICANN
		priv := f &^ fICANN
		r.ICANN = icann != 0 && (priv == 0 || flags&FlagPreferICANN != 0)
	}
	r.Suffix = norm[offs[sufIdx]:]
	if sufIdx > 0 {
		r.Root = norm[offs[sufIdx-1]:]
		if sufIdx > 1 {
			r.Sub = norm[:offs[sufIdx-1]-1]
		}
	}
	return
}

// Match walks trailing label sequences rightmost first and returns the
// offs position where the winning suffix starts, together with the
// winning rule's flag bits. Returns -1 when no explicit rule matched.
func (db *DB) match(norm []byte, offs []int, flags Flags) (int, uint8) {
	n := len(offs)
	start := n - db.depth
	if start < 0 {
		start = 0
	}
	mask := uint8(0xff)
	if flags&FlagICANNOnly != 0 {
		mask = fICANN
	}
	best := -1
	var bestF uint8
	for i := n - 1; i >= start; i-- {
		seq := norm[offs[i]:]
		e := db.index.get(db.hasher.Sum64(seq))
		if e == 0 {
			continue
		}
		lo, hi, f := e.decode()
		if f &= mask; f == 0 {
			continue
		}
		if !bytes.Equal(db.buf[lo:hi], seq) {
			// 64-bit hash collision, not our sequence.
			continue
		}
		if f&fExc != 0 {
			// Exception carves the boundary one label inward and
			// overrides any other match outright.
			return i + 1, f & fExc
		}
		if f&fWild != 0 && i > 0 && (best < 0 || i-1 < best) {
			best, bestF = i-1, f&fWild
		}
		if f&fPlain != 0 && (best < 0 || i < best) {
			best, bestF = i, f&fPlain
		}
	}
	return best, bestF
}

func (db *DB) Reset() {
	if err := db.checkStatus(); err != nil {
		return
	}
	db.SetPolicy(policy.Locked)
	db.Lock()
	db.index.reset()
	db.buf = db.buf[:0]
	db.depth = 0
	db.Unlock()
	db.SetPolicy(policy.LockFree)
}

func (db *DB) checkStatus() error {
	if atomic.LoadUint32(&db.status) == statusNil {
		return ErrBadDB
	}
	return nil
}
