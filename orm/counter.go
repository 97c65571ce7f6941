package orm

import (
	"github.com/iov-one/vault/codec"
	"github.com/iov-one/vault/errors"
)

func init() {
	codec.RegisterConcrete(&Counter{}, "vault/orm/Counter")
	codec.RegisterConcrete(&CounterWithID{}, "vault/orm/CounterWithID")
}

var (
	_ Model = (*Counter)(nil)
	_ Model = (*CounterWithID)(nil)
)

// Counter could be used for sequence, but mainly just for test purposes
type Counter struct {
	Count int64 `json:"count"`
}

// NewCounter returns an initialized counter
func NewCounter(count int64) *Counter {
	return &Counter{Count: count}
}

func (c *Counter) GetCount() int64 {
	if c == nil {
		return 0
	}
	return c.Count
}

func (c *Counter) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *Counter) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, c)
}

// Copy produces a new copy to fulfill the Model interface
func (c *Counter) Copy() CloneableData {
	return &Counter{Count: c.Count}
}

// Validate rejects a negative count
func (c *Counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "count cannot be negative")
	}
	return nil
}

// CounterWithID is a counter that stores its own primary key. Mainly for
// test purposes.
type CounterWithID struct {
	ID    []byte `json:"id"`
	Count int64  `json:"count"`
}

// SetID is a minimal implementation, useful when the ID is a separate field
func (c *CounterWithID) SetID(id []byte) error {
	c.ID = id
	return nil
}

func (c *CounterWithID) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *CounterWithID) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, c)
}

// Copy produces a new copy to fulfill the Model interface
func (c *CounterWithID) Copy() CloneableData {
	return &CounterWithID{
		ID:    c.ID,
		Count: c.Count,
	}
}

// Validate is always successful
func (c *CounterWithID) Validate() error {
	return nil
}
