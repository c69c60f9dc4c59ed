package psdb

// PublicSuffix returns the public suffix (eTLD) of hostname.
func (db *DB) PublicSuffix(hostname []byte, flags Flags) ([]byte, error) {
	r, err := db.Lookup(hostname, flags)
	if err != nil {
		return nil, err
	}
	return r.Suffix, nil
}

// RootDomain returns the registrable domain (eTLD+1) of hostname.
// Fails with ErrNoRoot when the hostname is a public suffix itself.
func (db *DB) RootDomain(hostname []byte, flags Flags) ([]byte, error) {
	r, err := db.Lookup(hostname, flags)
	if err != nil {
		return nil, err
	}
	if len(r.Root) == 0 {
		return nil, ErrNoRoot
	}
	return r.Root, nil
}

// Subdomain returns the labels of hostname left of the registrable
// domain; nil when there are none.
func (db *DB) Subdomain(hostname []byte, flags Flags) ([]byte, error) {
	r, err := db.Lookup(hostname, flags)
	if err != nil {
		return nil, err
	}
	return r.Sub, nil
}

// IsSuffix reports whether the whole hostname is a public suffix.
func (db *DB) IsSuffix(hostname []byte, flags Flags) bool {
	r, err := db.Lookup(hostname, flags)
	return err == nil && len(r.Root) == 0
}

// GetETLD is a shorthand alias of PublicSuffix with default flags.
func (db *DB) GetETLD(hostname []byte) ([]byte, error) {
	return db.PublicSuffix(hostname, 0)
}

// GetETLD1 is a shorthand alias of RootDomain with default flags.
func (db *DB) GetETLD1(hostname []byte) ([]byte, error) {
	return db.RootDomain(hostname, 0)
}
