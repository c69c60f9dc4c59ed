package psdb

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
	"unicode/utf8"

	"github.com/koykov/bytealg"
	"github.com/koykov/fastconv"
	"github.com/koykov/policy"
)

const (
	sectionNone = iota
	sectionICANN
	sectionPrivate
)

// Load reads the public suffix list from dbFile and publishes the model.
// A malformed list fails the build and keeps the previous model intact.
func (db *DB) Load(dbFile string) (err error) {
	if err = db.checkStatus(); err != nil {
		return err
	}

	db.SetPolicy(policy.Locked)
	db.Lock()
	defer func() {
		db.Unlock()
		db.SetPolicy(policy.LockFree)
	}()

	var file *os.File
	if file, err = os.OpenFile(dbFile, os.O_RDONLY, os.ModePerm); err != nil {
		return
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	return db.scan(scanner)
}

// Fetch reads the public suffix list from dbURL and publishes the model.
func (db *DB) Fetch(dbURL string) (err error) {
	if err = db.checkStatus(); err != nil {
		return err
	}

	db.SetPolicy(policy.Locked)
	db.Lock()
	defer func() {
		db.Unlock()
		db.SetPolicy(policy.LockFree)
	}()

	var resp *http.Response
	if resp, err = http.Get(dbURL); err != nil {
		return
	}
	defer func() { _ = resp.Body.Close() }()

	scanner := bufio.NewScanner(resp.Body)
	return db.scan(scanner)
}

func (db *DB) FetchFull() error {
	return db.Fetch(FullURL)
}

// LoadOrFetchIf loads dbFile, downloading it from dbURL first when the
// local copy is missing or older than expire.
func (db *DB) LoadOrFetchIf(dbFile, dbURL string, expire time.Duration) error {
	var fetch bool
	if stat, err := os.Stat(dbFile); err != nil || time.Since(stat.ModTime()) > expire {
		fetch = true
	}
	if fetch {
		_ = db.dl(dbURL, dbFile)
	}
	return db.Load(dbFile)
}

func (db *DB) LoadOrFetchFullIf(dbFile string, expire time.Duration) error {
	return db.LoadOrFetchIf(dbFile, FullURL, expire)
}

func (db *DB) dl(src, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	resp, err := http.Get(src)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %s", resp.Status)
	}

	_, err = io.Copy(out, resp.Body)
	return err
}

// Scan parses the list into a staging index and buffer and publishes
// them only on success. Caller must hold the write lock.
func (db *DB) scan(scanner *bufio.Scanner) error {
	var (
		idx     = make(index, 1<<13)
		buf     []byte
		depth   int
		section = sectionNone
		ln      int
	)
	for scanner.Scan() {
		ln++
		line := bytealg.TrimLeft(scanner.Bytes(), bSpace)
		if n := len(line); n > 0 && line[n-1] == '\r' {
			line = line[:n-1]
		}
		if !utf8.Valid(line) {
			return fmt.Errorf("%w: invalid UTF-8 at line %d", ErrBadList, ln)
		}
		switch {
		case bytes.Equal(line, bBeginICANN):
			if section != sectionNone {
				return fmt.Errorf("%w: nested section marker at line %d", ErrBadList, ln)
			}
			section = sectionICANN
			continue
		case bytes.Equal(line, bEndICANN):
			if section != sectionICANN {
				return fmt.Errorf("%w: unbalanced section marker at line %d", ErrBadList, ln)
			}
			section = sectionNone
			continue
		case bytes.Equal(line, bBeginPrivate):
			if section != sectionNone {
				return fmt.Errorf("%w: nested section marker at line %d", ErrBadList, ln)
			}
			section = sectionPrivate
			continue
		case bytes.Equal(line, bEndPrivate):
			if section != sectionPrivate {
				return fmt.Errorf("%w: unbalanced section marker at line %d", ErrBadList, ln)
			}
			section = sectionNone
			continue
		}
		if len(line) == 0 || line[0] == '/' {
			continue
		}
		// Rule text ends at the first whitespace.
		if p := bytes.IndexAny(line, " \t"); p != -1 {
			line = line[:p]
		}
		if section == sectionNone {
			return fmt.Errorf("%w: rule outside any section at line %d", ErrBadList, ln)
		}
		var f uint8
		switch {
		case line[0] == '!':
			line = line[1:]
			if f = fExcICANN; section == sectionPrivate {
				f = fExcPrivate
			}
			if !bytealg.HasByteLR(line, '.') {
				// An exception must leave at least one suffix label.
				return fmt.Errorf("%w: single-label exception at line %d", ErrBadList, ln)
			}
		case len(line) > 1 && bytes.Equal(line[:2], bMaskAll):
			line = line[2:]
			if f = fWildICANN; section == sectionPrivate {
				f = fWildPrivate
			}
		default:
			if f = fPlainICANN; section == sectionPrivate {
				f = fPlainPrivate
			}
		}
		if len(line) == 0 {
			return fmt.Errorf("%w: empty rule at line %d", ErrBadList, ln)
		}

		rule := make([]byte, len(line))
		ascii := true
		for i := 0; i < len(line); i++ {
			c := line[i]
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c >= utf8.RuneSelf {
				ascii = false
			}
			rule[i] = c
		}
		if !ascii {
			s, err := idnaProfile.ToASCII(fastconv.B2S(line))
			if err != nil {
				return fmt.Errorf("%w: bad rule at line %d: %s", ErrBadList, ln, err.Error())
			}
			rule = fastconv.S2B(s)
		}
		if rule[0] == '.' || rule[len(rule)-1] == '.' || bytes.Contains(rule, []byte("..")) {
			return fmt.Errorf("%w: empty label in rule at line %d", ErrBadList, ln)
		}

		h := db.hasher.Sum64(rule)
		if e := idx.get(h); e != 0 {
			lo, hi, f0 := e.decode()
			if !bytes.Equal(buf[lo:hi], rule) {
				return fmt.Errorf("%w: hasher collision at line %d", ErrBadList, ln)
			}
			if (f0&fPlain != 0 && f&fExc != 0) || (f0&fExc != 0 && f&fPlain != 0) {
				return fmt.Errorf("%w: rule declared both plain and exception at line %d", ErrBadList, ln)
			}
			idx.set(h, lo, hi, f0|f)
		} else {
			lo := uint32(len(buf))
			hi := lo + uint32(len(rule))
			buf = append(buf, rule...)
			idx.set(h, lo, hi, f)
		}
		if dc := labelCount(rule); dc > depth {
			depth = dc
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if section != sectionNone {
		return fmt.Errorf("%w: unterminated section", ErrBadList)
	}

	db.index, db.buf, db.depth = idx, buf, depth
	return nil
}

func labelCount(p []byte) (n int) {
	n = 1
	off := 0
	for {
		if off = bytealg.IndexAt(p, bDot, off); off == -1 {
			return
		}
		n++
		off++
	}
}
