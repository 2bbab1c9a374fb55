package id

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
)

const charset = "23456789ABCDEFGHJKMNPQRSTUVWXYZ"
const hashLen = 5

// Prefix marks every video project id.
const Prefix = "VID"

// maxDraws bounds collision retries. With 31^5 ids this is never reached in
// practice; hitting it means the source is broken.
const maxDraws = 64

// ErrInvalid is returned by Parse for anything that is not a project id.
var ErrInvalid = errors.New("invalid project id")

func newFrom(read func([]byte) (int, error)) (string, error) {
	b := make([]byte, hashLen)
	if _, err := read(b); err != nil {
		return "", fmt.Errorf("generating id: %w", err)
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return Prefix + "-" + string(b), nil
}

// Parse validates id and returns its hash part.
func Parse(id string) (string, error) {
	idx := strings.LastIndex(id, "-")
	if idx < 0 {
		return "", fmt.Errorf("%w %q: missing separator", ErrInvalid, id)
	}
	if prefix := id[:idx]; prefix != Prefix {
		return "", fmt.Errorf("%w %q: unknown prefix %q", ErrInvalid, id, prefix)
	}
	hash := id[idx+1:]
	if len(hash) != hashLen {
		return "", fmt.Errorf("%w %q: hash must be %d chars", ErrInvalid, id, hashLen)
	}
	for _, c := range hash {
		if !strings.ContainsRune(charset, c) {
			return "", fmt.Errorf("%w %q: invalid character %q", ErrInvalid, id, c)
		}
	}
	return hash, nil
}

// Generator hands out ids that are never repeated over its lifetime.
type Generator struct {
	mu     sync.Mutex
	issued map[string]struct{}
	read   func([]byte) (int, error)
}

func NewGenerator() *Generator {
	return &Generator{issued: make(map[string]struct{}), read: rand.Read}
}

// Next draws ids until it finds one it has not issued before.
func (g *Generator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for range maxDraws {
		v, err := newFrom(g.read)
		if err != nil {
			return "", err
		}
		if _, dup := g.issued[v]; dup {
			continue
		}
		g.issued[v] = struct{}{}
		return v, nil
	}
	return "", fmt.Errorf("generating id: no unused id after %d draws", maxDraws)
}

