package ast

// Kind is the type of an ast Node.
type Kind int

// AST Node kinds.
//
//go:generate stringer -type Kind -linecomment
const (
	KindInvalid Kind = iota // Invalid
	KindNull                // Null
	KindBool                // Bool
	KindString              // String
	KindNumber              // Number
	KindArray               // Array
	KindObject              // Object
)

// MarshalText implements [encoding.TextMarshaler] for [Kind].
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
