package vault

import (
	"github.com/iov-one/vault/codec"
	"github.com/iov-one/vault/errors"
)

func init() {
	// Messages are carried inside transactions through an interface
	// field and must be declared to the codec before any concrete
	// implementation registers itself.
	codec.RegisterInterface((*Msg)(nil))
}

// Metadata carries the schema version of the entity or message it is
// attached to. Every persistent model and every message declares which
// schema version it was created with so that migrations can upgrade old
// data on the fly.
type Metadata struct {
	Schema uint32
}

var _ Persistent = (*Metadata)(nil)

// Validate returns an error if the metadata is missing or declares an
// impossible schema version.
func (m *Metadata) Validate() error {
	if m == nil {
		return errors.Wrap(errors.ErrMetadata, "missing metadata")
	}
	if m.Schema < 1 {
		return errors.Wrap(errors.ErrMetadata, "schema version must be greater than zero")
	}
	return nil
}

// Copy returns a copy of this object. This method is helpful when implementing
// orm.CloneableData interface to make a copy of the header.
func (m *Metadata) Copy() *Metadata {
	if m == nil {
		return nil
	}
	cpy := *m
	return &cpy
}

func (m *Metadata) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *Metadata) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}
