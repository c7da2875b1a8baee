package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHashDeterministic(t *testing.T) {
	h := DefaultHasher()

	assert.Equal(t, h.HashString("hello"), h.HashString("hello"))
	assert.NotEqual(t, h.HashString("hello"), h.HashString("world"))
	assert.Len(t, h.HashString("hello"), 64)
}

func TestHashFieldsOrderIndependent(t *testing.T) {
	h := DefaultHasher()

	a := h.HashFields("one", "two", "three")
	b := h.HashFields("three", "one", "two")

	assert.Equal(t, a, b)
}

func TestETaggerForFile(t *testing.T) {
	et := NewETagger(nil)
	mod := time.Unix(1700000000, 0)

	tag := et.ForFile("/srv/snapshot/index.html", 512, mod)

	assert.True(t, strings.HasPrefix(tag, `"`))
	assert.True(t, strings.HasSuffix(tag, `"`))
	assert.Len(t, tag, 34) // 32 hex chars plus quotes

	// Same identity, same tag
	assert.Equal(t, tag, et.ForFile("/srv/snapshot/index.html", 512, mod))

	// Any change to identity changes the tag
	assert.NotEqual(t, tag, et.ForFile("/srv/snapshot/index.html", 513, mod))
	assert.NotEqual(t, tag, et.ForFile("/srv/snapshot/other.html", 512, mod))
	assert.NotEqual(t, tag, et.ForFile("/srv/snapshot/index.html", 512, mod.Add(time.Second)))
}

func TestETaggerMatches(t *testing.T) {
	et := NewETagger(nil)
	tag := `"abc123"`

	tests := []struct {
		name   string
		header string
		want   bool
	}{
		{name: "exact match", header: `"abc123"`, want: true},
		{name: "wildcard", header: "*", want: true},
		{name: "in list", header: `"zzz", "abc123"`, want: true},
		{name: "weak validator", header: `W/"abc123"`, want: true},
		{name: "no match", header: `"zzz"`, want: false},
		{name: "empty header", header: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, et.Matches(tt.header, tag))
		})
	}
}
