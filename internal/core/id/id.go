package id

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a generated identifier carrying a short entity-kind
// prefix, e.g. "exp_6f1c...". The prefix aids debugging and export
// tooling only; queries never parse it.
func New(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// Kind extracts the prefix from an identifier, or "" if it has none.
func Kind(identifier string) string {
	idx := strings.IndexByte(identifier, '_')
	if idx <= 0 {
		return ""
	}
	return identifier[:idx]
}
