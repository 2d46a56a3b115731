// Package util holds small helpers shared by the packages of the module.
package util

import (
	"strings"
	"sync"
)

// Ellipsis cuts s to maxLen runes and appends "..." if it was longer.
func Ellipsis(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[0:maxLen]) + "..."
}

var strBldrPool = &sync.Pool{
	New: func() any {
		sb := new(strings.Builder)
		sb.Grow(256)
		return sb
	},
}

func GetStringBuilder() *strings.Builder {
	return strBldrPool.Get().(*strings.Builder) //nolint:forcetypeassert
}

func FreeStringBuilder(sb *strings.Builder) {
	if sb.Cap() > 64*1024 {
		return
	}
	sb.Reset()
	strBldrPool.Put(sb)
}

// Must2 returns v or panics with e.
func Must2[T any](v T, e error) T {
	if e != nil {
		panic(e)
	}
	return v
}
