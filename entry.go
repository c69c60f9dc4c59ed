package psdb

// Rule kind/section flag bits carried in the low byte of an entry.
//
// One stored sequence may carry several bits at once, since the list
// legitimately declares e.g. both "foo.bar" and "*.foo.bar".
const (
	fPlainICANN   = 1 << 0
	fPlainPrivate = 1 << 1
	fWildICANN    = 1 << 2
	fWildPrivate  = 1 << 3
	fExcICANN     = 1 << 4
	fExcPrivate   = 1 << 5

	fPlain = fPlainICANN | fPlainPrivate
	fWild  = fWildICANN | fWildPrivate
	fExc   = fExcICANN | fExcPrivate
	fICANN = fPlainICANN | fWildICANN | fExcICANN
)

// Entry packs lo/hi offsets of the rule text in the shared buffer
// (28 bits each) together with kind/section flags in the low byte.
type entry uint64

func (e *entry) encode(lo, hi uint32, f uint8) {
	*e = entry(lo&0xfffffff)<<36 | entry(hi&0xfffffff)<<8 | entry(f)
}

func (e entry) decode() (lo, hi uint32, f uint8) {
	lo = uint32(e>>36) & 0xfffffff
	hi = uint32(e>>8) & 0xfffffff
	f = uint8(e)
	return
}
