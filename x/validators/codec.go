package validators

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/codec"
)

func init() {
	codec.RegisterConcrete(&Accounts{}, "vault/validators/Accounts")
	codec.RegisterConcrete(&ApplyDiffMsg{}, "vault/validators/apply_diff_msg")
}

// Accounts is a list of addresses that are allowed to update the
// validator set.
type Accounts struct {
	Metadata  *vault.Metadata `json:"metadata"`
	Addresses [][]byte        `json:"addresses"`
}

func (a *Accounts) GetMetadata() *vault.Metadata {
	if a == nil {
		return nil
	}
	return a.Metadata
}

func (a *Accounts) GetAddresses() [][]byte {
	if a == nil {
		return nil
	}
	return a.Addresses
}

func (a *Accounts) Marshal() ([]byte, error) {
	return codec.Marshal(a)
}

func (a *Accounts) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, a)
}

// ApplyDiffMsg applies the given diff to the current validator set.
type ApplyDiffMsg struct {
	Metadata         *vault.Metadata        `json:"metadata"`
	ValidatorUpdates []vault.ValidatorUpdate `json:"validator_updates"`
}

func (m *ApplyDiffMsg) GetMetadata() *vault.Metadata {
	if m == nil {
		return nil
	}
	return m.Metadata
}

func (m *ApplyDiffMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *ApplyDiffMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}
