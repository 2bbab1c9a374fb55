package model

import (
	"slices"
	"strings"
)

// Tags is an insertion-ordered set of non-empty, trimmed tokens. Equality is
// case-sensitive.
type Tags []string

// NormalizeTag trims surrounding whitespace. An empty result is not a tag.
func NormalizeTag(v string) string {
	return strings.TrimSpace(v)
}

func (t Tags) Contains(tag string) bool {
	return slices.Contains(t, NormalizeTag(tag))
}

// With returns t with tag appended. added is false when tag is empty or
// already present, in which case t is returned unchanged.
func (t Tags) With(tag string) (Tags, bool) {
	tag = NormalizeTag(tag)
	if tag == "" || slices.Contains(t, tag) {
		return t, false
	}
	return append(t.Clone(), tag), true
}

// Without returns t minus tag. removed is false when tag was absent.
func (t Tags) Without(tag string) (Tags, bool) {
	i := slices.Index(t, NormalizeTag(tag))
	if i < 0 {
		return t, false
	}
	out := make(Tags, 0, len(t)-1)
	out = append(out, t[:i]...)
	return append(out, t[i+1:]...), true
}

func (t Tags) Clone() Tags {
	if t == nil {
		return nil
	}
	return slices.Clone(t)
}
