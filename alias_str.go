package psdb

import "github.com/koykov/fastconv"

// ResultStr is the string counterpart of Result.
type ResultStr struct {
	Suffix, Root, Sub string
	ICANN, Known      bool
}

func (db *DB) ParseStr(hostname string) (ResultStr, error) {
	return db.LookupStr(hostname, 0)
}

func (db *DB) LookupStr(hostname string, flags Flags) (r ResultStr, err error) {
	var x Result
	if x, err = db.Lookup(fastconv.S2B(hostname), flags); err != nil {
		return
	}
	// Result slices alias the per-call normalized buffer, safe to view
	// as strings.
	r.Suffix, r.Root, r.Sub = fastconv.B2S(x.Suffix), fastconv.B2S(x.Root), fastconv.B2S(x.Sub)
	r.ICANN, r.Known = x.ICANN, x.Known
	return
}

func (db *DB) PublicSuffixStr(hostname string, flags Flags) (string, error) {
	ps, err := db.PublicSuffix(fastconv.S2B(hostname), flags)
	if err != nil {
		return "", err
	}
	return fastconv.B2S(ps), nil
}

func (db *DB) RootDomainStr(hostname string, flags Flags) (string, error) {
	root, err := db.RootDomain(fastconv.S2B(hostname), flags)
	if err != nil {
		return "", err
	}
	return fastconv.B2S(root), nil
}

func (db *DB) SubdomainStr(hostname string, flags Flags) (string, error) {
	sub, err := db.Subdomain(fastconv.S2B(hostname), flags)
	if err != nil {
		return "", err
	}
	return fastconv.B2S(sub), nil
}

func (db *DB) IsSuffixStr(hostname string, flags Flags) bool {
	return db.IsSuffix(fastconv.S2B(hostname), flags)
}

func (db *DB) GetETLDStr(hostname string) (string, error) {
	return db.PublicSuffixStr(hostname, 0)
}

func (db *DB) GetETLD1Str(hostname string) (string, error) {
	return db.RootDomainStr(hostname, 0)
}
