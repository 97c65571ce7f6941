package timelock

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/codec"
	"github.com/iov-one/vault/coin"
)

func init() {
	codec.RegisterConcrete(&LockedFund{}, "vault/timelock/LockedFund")
	codec.RegisterConcrete(&Configuration{}, "vault/timelock/Configuration")
	codec.RegisterConcrete(&LockMsg{}, "vault/timelock/lock_msg")
	codec.RegisterConcrete(&ReleaseMsg{}, "vault/timelock/release_msg")
	codec.RegisterConcrete(&CancelMsg{}, "vault/timelock/cancel_msg")
	codec.RegisterConcrete(&UpdateConfigurationMsg{}, "vault/timelock/update_configuration_msg")
}

// LockedFund is a deposit held on a custody account until the unlock
// time is reached. The deposited coins are kept in the cash wallet of
// the custody Address, not in this record.
type LockedFund struct {
	Metadata *vault.Metadata `json:"metadata"`
	// Sender is the address the deposit was taken from. It is refunded
	// on cancel.
	Sender vault.Address `json:"sender"`
	// Recipient is the only address that can release the deposit.
	Recipient vault.Address `json:"recipient"`
	// Holder is the party the deposit is attributed to while locked.
	// It is fixed at lock time from the holder policy active then.
	Holder vault.Address `json:"holder"`
	// UnlockAt is the first point in time the deposit can be released.
	UnlockAt vault.UnixTime `json:"unlock_at"`
	// Memo is a max 128 characters note attached to the lock.
	Memo string `json:"memo,omitempty"`
	// Address of the custody account holding the deposited coins.
	Address vault.Address `json:"address"`
}

func (l *LockedFund) GetMetadata() *vault.Metadata {
	if l == nil {
		return nil
	}
	return l.Metadata
}

func (l *LockedFund) GetSender() vault.Address {
	if l == nil {
		return nil
	}
	return l.Sender
}

func (l *LockedFund) GetRecipient() vault.Address {
	if l == nil {
		return nil
	}
	return l.Recipient
}

func (l *LockedFund) Marshal() ([]byte, error) {
	return codec.Marshal(l)
}

func (l *LockedFund) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, l)
}

// HolderPolicy declares which party a locked deposit is attributed to
// while the lock lasts.
type HolderPolicy int32

const (
	HolderInvalid   HolderPolicy = 0
	HolderRecipient HolderPolicy = 1
	HolderSender    HolderPolicy = 2
)

// CancelErrorPolicy declares which error a cancel after the unlock
// time fails with.
type CancelErrorPolicy int32

const (
	CancelErrorInvalid CancelErrorPolicy = 0
	// CancelErrorShared reports a late cancel with the same error as a
	// premature release.
	CancelErrorShared CancelErrorPolicy = 1
	// CancelErrorDistinct reports a late cancel with a dedicated error.
	CancelErrorDistinct CancelErrorPolicy = 2
)

// Configuration is the timelock extension configuration.
type Configuration struct {
	Metadata *vault.Metadata `json:"metadata"`
	// Owner is allowed to update the configuration.
	Owner vault.Address `json:"owner,omitempty"`
	// Holder decides who new locks are attributed to.
	Holder HolderPolicy `json:"holder"`
	// CancelError decides how a cancel after the unlock time fails.
	CancelError CancelErrorPolicy `json:"cancel_error"`
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

// LockMsg locks a deposit on a custody account until the lock
// duration passed.
type LockMsg struct {
	Metadata *vault.Metadata `json:"metadata"`
	// Sender is the address the deposit is taken from. If empty the
	// main transaction signer is used.
	Sender vault.Address `json:"sender,omitempty"`
	// Recipient is the address allowed to release the deposit.
	Recipient vault.Address `json:"recipient"`
	Amount    *coin.Coin    `json:"amount"`
	// LockDuration is the lock time counted from the current block,
	// with a granularity of a second.
	LockDuration vault.UnixDuration `json:"lock_duration"`
	// Memo is a max 128 characters note attached to the lock.
	Memo string `json:"memo,omitempty"`
}

func (m *LockMsg) GetMetadata() *vault.Metadata {
	if m == nil {
		return nil
	}
	return m.Metadata
}

func (m *LockMsg) GetSender() vault.Address {
	if m == nil {
		return nil
	}
	return m.Sender
}

func (m *LockMsg) GetAmount() *coin.Coin {
	if m == nil {
		return nil
	}
	return m.Amount
}

func (m *LockMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *LockMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// ReleaseMsg pays a locked deposit out to the recipient. Only valid
// once the unlock time was reached.
type ReleaseMsg struct {
	Metadata *vault.Metadata `json:"metadata"`
	LockID   []byte          `json:"lock_id"`
}

func (m *ReleaseMsg) GetMetadata() *vault.Metadata {
	if m == nil {
		return nil
	}
	return m.Metadata
}

func (m *ReleaseMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *ReleaseMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// CancelMsg refunds a locked deposit to the sender. Only valid before
// the unlock time was reached.
type CancelMsg struct {
	Metadata *vault.Metadata `json:"metadata"`
	LockID   []byte          `json:"lock_id"`
}

func (m *CancelMsg) GetMetadata() *vault.Metadata {
	if m == nil {
		return nil
	}
	return m.Metadata
}

func (m *CancelMsg) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *CancelMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

// UpdateConfigurationMsg updates the timelock configuration. Zero
// value fields of the patch are ignored.
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
