/*
Package codec provides the binary serialization used for all persistent
models and wire messages.

A single amino codec instance is shared by the whole application so that
interface implementations registered by one package can be decoded by any
other. Packages declare their concrete types in an init function, for
example:

	func init() {
		codec.RegisterConcrete(&LockMsg{}, "vault/timelock/lock_msg")
	}

Registration names must be globally unique and are part of the wire
format. Changing a name is a breaking change for all persisted data.
*/
package codec

import (
	amino "github.com/tendermint/go-amino"
)

// cdc is the application wide codec. It must only be mutated during
// package initialization.
var cdc = amino.NewCodec()

// RegisterInterface declares an interface type so that concrete
// implementations can be serialized through it. ptr must be a pointer to a
// nil interface, for example (*Msg)(nil).
func RegisterInterface(ptr interface{}) {
	cdc.RegisterInterface(ptr, nil)
}

// RegisterConcrete declares a concrete type under a globally unique name.
// Use this for every type that is persisted or sent over the wire through
// an interface field.
func RegisterConcrete(o interface{}, name string) {
	cdc.RegisterConcrete(o, name, nil)
}

// Marshal serializes o into the binary wire format.
func Marshal(o interface{}) ([]byte, error) {
	return cdc.MarshalBinaryBare(o)
}

// Unmarshal deserializes raw into o, which must be a pointer.
func Unmarshal(raw []byte, o interface{}) error {
	return cdc.UnmarshalBinaryBare(raw, o)
}

// MustMarshal serializes o and panics on failure. Use only with types that
// cannot fail to serialize, for example in tests or genesis setup.
func MustMarshal(o interface{}) []byte {
	raw, err := Marshal(o)
	if err != nil {
		panic(err)
	}
	return raw
}

// MarshalJSON serializes o using amino flavoured JSON. This is used by
// client side tooling, never for the state stored under merkle roots.
func MarshalJSON(o interface{}) ([]byte, error) {
	return cdc.MarshalJSON(o)
}

// UnmarshalJSON deserializes amino flavoured JSON into o.
func UnmarshalJSON(raw []byte, o interface{}) error {
	return cdc.UnmarshalJSON(raw, o)
}
