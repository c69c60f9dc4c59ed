package psdb

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	type stage struct {
		hostname string
		norm     string
		labels   int
		err      error
	}
	stages := []stage{
		{hostname: "example.com", norm: "example.com", labels: 2},
		{hostname: "Example.COM", norm: "example.com", labels: 2},
		{hostname: "example.com.", norm: "example.com", labels: 2},
		{hostname: "localhost", norm: "localhost", labels: 1},
		{hostname: "_tcp.example.com", norm: "_tcp.example.com", labels: 3},
		{hostname: "食狮.中国", norm: "xn--85x722f.xn--fiqs8s", labels: 2},
		{hostname: "МОСКВА.РФ", norm: "xn--80adxhks.xn--p1ai", labels: 2},
		{hostname: "", err: ErrEmptyHost},
		{hostname: ".", err: ErrEmptyHost},
		{hostname: "..", err: ErrEmptyLabel},
		{hostname: "a..b", err: ErrEmptyLabel},
		{hostname: ".a", err: ErrEmptyLabel},
		{hostname: "a.b..", err: ErrEmptyLabel},
	}
	for _, s := range stages {
		t.Run(s.hostname, func(t *testing.T) {
			norm, offs, err := normalize([]byte(s.hostname))
			if s.err != nil {
				if !errors.Is(err, s.err) {
					t.Fatalf("error mismatch: need '%v', got '%v'", s.err, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if string(norm) != s.norm {
				t.Errorf("norm mismatch: need '%s', got '%s'", s.norm, norm)
			}
			if len(offs) != s.labels {
				t.Errorf("labels mismatch: need '%d', got '%d'", s.labels, len(offs))
			}
		})
	}
}

func TestToUnicode(t *testing.T) {
	u, err := ToUnicodeStr("xn--85x722f.xn--fiqs8s")
	if err != nil {
		t.Fatal(err)
	}
	if u != "食狮.中国" {
		t.Errorf("mismatch: need '食狮.中国', got '%s'", u)
	}
}
