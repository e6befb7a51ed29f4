package catalog

import (
	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck/internal/scope"
)

// idNamespace seeds UUIDv5 derivation for file-backed records.
var idNamespace = uuid.MustParse("9f2c1f9a-6d3b-4b43-9a55-0e6f3a7d8c21")

// NewID returns a fresh random identifier for a record created in the store.
func NewID() string {
	return uuid.NewString()
}

// StableID derives a deterministic identifier from a record's kind, scope and
// name. Records decoded from disk carry this id so re-scanning an unchanged
// file never mints a second identity.
func StableID(kind Kind, sc scope.Scope, name string) string {
	return uuid.NewSHA1(idNamespace, []byte(string(kind)+"/"+string(sc)+"/"+name)).String()
}
