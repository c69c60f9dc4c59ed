package psdb

import (
	"errors"
	"strings"
	"testing"

	"github.com/koykov/hash/fnv"
)

func TestIO(t *testing.T) {
	t.Run("load small", func(t *testing.T) {
		psdb, err := New(fnv.BHasher{})
		if err != nil {
			t.Fatal(err)
		}
		if err = psdb.Load("testdata/small.psdb"); err != nil {
			t.Error(err)
		}
	})
	t.Run("load or fetch bad path", func(t *testing.T) {
		psdb, err := New(fnv.BHasher{})
		if err != nil {
			t.Fatal(err)
		}
		// Stat on an over-long name fails with an error other than
		// not-exist; must surface as an error, not a crash.
		long := strings.Repeat("a", 300)
		if err = psdb.LoadOrFetchIf(long, "http://127.0.0.1:0/list.dat", 0); err == nil {
			t.Error("no error on unusable db file path")
		}
	})
	t.Run("reload idempotent", func(t *testing.T) {
		psdb := newTestDB(t)
		if err := psdb.Load("testdata/small.psdb"); err != nil {
			t.Fatal(err)
		}
		r, err := psdb.ParseStr("a.b.example.co.uk")
		if err != nil {
			t.Fatal(err)
		}
		if r.Suffix != "co.uk" {
			t.Errorf("suffix mismatch: need 'co.uk', got '%s'", r.Suffix)
		}
	})
}

func TestIOMalformed(t *testing.T) {
	files := []string{
		"testdata/malformed_nosection.psdb",
		"testdata/malformed_conflict.psdb",
		"testdata/malformed_unterminated.psdb",
	}
	for _, f := range files {
		t.Run(f, func(t *testing.T) {
			psdb, err := New(fnv.BHasher{})
			if err != nil {
				t.Fatal(err)
			}
			if err = psdb.Load(f); !errors.Is(err, ErrBadList) {
				t.Errorf("error mismatch: need '%v', got '%v'", ErrBadList, err)
			}
		})
	}
}

func TestIOKeepOnFailure(t *testing.T) {
	// A failed rebuild must leave the previously published model intact.
	psdb := newTestDB(t)
	if err := psdb.Load("testdata/malformed_nosection.psdb"); !errors.Is(err, ErrBadList) {
		t.Fatalf("error mismatch: need '%v', got '%v'", ErrBadList, err)
	}
	r, err := psdb.ParseStr("www.example.co.uk")
	if err != nil {
		t.Fatal(err)
	}
	if r.Suffix != "co.uk" || !r.Known {
		t.Errorf("model lost after failed rebuild: got suffix '%s', known '%t'", r.Suffix, r.Known)
	}
}
