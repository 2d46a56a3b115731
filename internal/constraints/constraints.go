// Package constraints holds generic type constraints shared by the internal packages.
package constraints

// Byteseq is satisfied by string-like and byte-slice-like types,
// e.g. a template pattern or a raw URI.
type Byteseq interface {
	~string | ~[]byte
}
