package grammar

//go:generate go tool errtrace -w .

import (
	"fmt"

	"github.com/ghettovoice/abnf"

	"github.com/bmaland/uri-template/internal/constraints"
)

func init() {
	abnf.EnableNodeCache(10 * 1024)
}

type Error string

func (e Error) Error() string { return string(e) }

func (Error) Grammar() bool { return true }

const (
	ErrNodeNotFound Error = "node not found"
	ErrUnexpectNode Error = "unexpected node"
)

// MustGetNode returns a pointer to the ABNF node with the given key.
func MustGetNode(n *abnf.Node, k string) *abnf.Node {
	sn, ok := n.GetNode(k)
	if !ok {
		panic(fmt.Errorf("get node %q from node %q: %w", k, n.Key, ErrNodeNotFound))
	}
	return sn
}

// IsTemplate reports whether the whole s matches the template rule.
// An empty template is valid.
func IsTemplate[T constraints.Byteseq](s T) bool {
	return TemplatePrefix(s) == len(s)
}

// TemplatePrefix returns the length of the longest prefix of s matched by the template rule.
func TemplatePrefix[T constraints.Byteseq](s T) int {
	return ScanTemplate(s, func(TemplatePart) bool { return true })
}
