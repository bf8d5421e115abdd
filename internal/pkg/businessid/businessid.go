// Package businessid produces the public identifiers exposed instead of the
// internal numeric keys. An identifier is the entity kind's two letter prefix
// followed by twelve random decimal digits, e.g. CU004518229731.
package businessid

import (
	"math/rand/v2"
	"strings"
)

const digits = 12

// Kind identifies an entity type. The prefix is configured explicitly per
// kind rather than derived from a type name at runtime.
type Kind struct {
	name   string
	prefix string
}

var (
	Customer = Kind{name: "Customer", prefix: "CU"}
	Account  = Kind{name: "Account", prefix: "AC"}
)

func (k Kind) Name() string {
	return k.name
}

func (k Kind) Prefix() string {
	return k.prefix
}

// RoutingName is the kind name as used in event routing keys.
func (k Kind) RoutingName() string {
	return strings.ToLower(k.name)
}

// New generates a fresh business id for the given kind. Uniqueness is not
// checked here; a collision surfaces as a unique constraint violation at the
// storage layer.
func New(k Kind) string {
	var sb strings.Builder
	sb.Grow(len(k.prefix) + digits)
	sb.WriteString(k.prefix)
	for i := 0; i < digits; i++ {
		sb.WriteByte(byte('0' + rand.IntN(10)))
	}
	return sb.String()
}
