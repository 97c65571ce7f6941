package cash

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/codec"
	"github.com/iov-one/vault/coin"
)

func init() {
	codec.RegisterConcrete(&Set{}, "vault/cash/Set")
	codec.RegisterConcrete(&FeeInfo{}, "vault/cash/FeeInfo")
	codec.RegisterConcrete(&Configuration{}, "vault/cash/Configuration")
	codec.RegisterConcrete(&SendMsg{}, "vault/cash/send_msg")
	codec.RegisterConcrete(&UpdateConfigurationMsg{}, "vault/cash/update_configuration_msg")
}

// Set is the balance of a wallet, a set of coins with at most one
// entry per ticker.
type Set struct {
	Metadata *vault.Metadata `json:"metadata"`
	Coins    []*coin.Coin    `json:"coins,omitempty"`
}

func (s *Set) GetMetadata() *vault.Metadata {
	if s == nil {
		return nil
	}
	return s.Metadata
}

func (s *Set) GetCoins() []*coin.Coin {
	if s == nil {
		return nil
	}
	return s.Coins
}

func (s *Set) Marshal() ([]byte, error) {
	return codec.Marshal(s)
}

func (s *Set) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, s)
}

// SendMsg is a request to move tokens from the source to the
// destination address.
type SendMsg struct {
	Metadata    *vault.Metadata `json:"metadata"`
	Source      vault.Address   `json:"source"`
	Destination vault.Address   `json:"destination"`
	Amount      *coin.Coin      `json:"amount"`
	// Memo is a max 128 characters note attached to the transfer.
	Memo string `json:"memo,omitempty"`
	// Ref is a max 64 bytes binary reference to another transaction.
	Ref []byte `json:"ref,omitempty"`
}

func (s *SendMsg) GetMetadata() *vault.Metadata {
	if s == nil {
		return nil
	}
	return s.Metadata
}

func (s *SendMsg) GetSource() vault.Address {
	if s == nil {
		return nil
	}
	return s.Source
}

func (s *SendMsg) GetDestination() vault.Address {
	if s == nil {
		return nil
	}
	return s.Destination
}

func (s *SendMsg) GetAmount() *coin.Coin {
	if s == nil {
		return nil
	}
	return s.Amount
}

func (s *SendMsg) GetMemo() string {
	if s == nil {
		return ""
	}
	return s.Memo
}

func (s *SendMsg) GetRef() []byte {
	if s == nil {
		return nil
	}
	return s.Ref
}

func (s *SendMsg) Marshal() ([]byte, error) {
	return codec.Marshal(s)
}

func (s *SendMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, s)
}

// FeeInfo is the fee information attached to a transaction. Fees are
// paid by the payer, or the main signer when no payer is declared.
type FeeInfo struct {
	Payer vault.Address `json:"payer,omitempty"`
	Fees  *coin.Coin    `json:"fees"`
}

func (f *FeeInfo) GetPayer() vault.Address {
	if f == nil {
		return nil
	}
	return f.Payer
}

func (f *FeeInfo) GetFees() *coin.Coin {
	if f == nil {
		return nil
	}
	return f.Fees
}

func (f *FeeInfo) Marshal() ([]byte, error) {
	return codec.Marshal(f)
}

func (f *FeeInfo) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, f)
}

// Configuration is the cash extension configuration.
type Configuration struct {
	Metadata *vault.Metadata `json:"metadata"`
	// Owner is allowed to update the configuration.
	Owner vault.Address `json:"owner,omitempty"`
	// CollectorAddress is the address that receives all collected fees.
	CollectorAddress vault.Address `json:"collector_address"`
	// MinimalFee is the minimal fee accepted for any transaction. Zero
	// value means no fee is required.
	MinimalFee coin.Coin `json:"minimal_fee"`
}

func (c *Configuration) GetOwner() vault.Address {
	if c == nil {
		return nil
	}
	return c.Owner
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, c)
}

// UpdateConfigurationMsg updates the cash configuration. Zero value
// fields of the patch are ignored.
type UpdateConfigurationMsg struct {
	Metadata *vault.Metadata `json:"metadata"`
	Patch    *Configuration  `json:"patch"`
}

func (m *UpdateConfigurationMsg) GetMetadata() *vault.Metadata {
	if m == nil {
		return nil
	}
	return m.Metadata
}

func (m *UpdateConfigurationMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *UpdateConfigurationMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}
