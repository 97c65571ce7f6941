package app

import (
	"github.com/iov-one/vault/codec"
)

func init() {
	codec.RegisterConcrete(&ResultSet{}, "vault/app/result_set")
}

// ResultSet is a list of raw values, returned from queries over abci.
// Both the keys and the values of a query response are serialized as
// a ResultSet, so they can carry 0 to N entries while staying aligned.
type ResultSet struct {
	Results [][]byte `json:"results"`
}

func (m *ResultSet) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *ResultSet) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}
