package timelock

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/migration"
)

const (
	pathLockMsg                = "timelock/lock"
	pathReleaseMsg             = "timelock/release"
	pathCancelMsg              = "timelock/cancel"
	pathUpdateConfigurationMsg = "timelock/update_configuration"

	maxMemoSize int = 128
)

func init() {
	migration.MustRegister(1, &LockMsg{}, migration.NoModification)
	migration.MustRegister(1, &ReleaseMsg{}, migration.NoModification)
	migration.MustRegister(1, &CancelMsg{}, migration.NoModification)
	migration.MustRegister(1, &UpdateConfigurationMsg{}, migration.NoModification)
}

var _ vault.Msg = (*LockMsg)(nil)
var _ vault.Msg = (*ReleaseMsg)(nil)
var _ vault.Msg = (*CancelMsg)(nil)
var _ vault.Msg = (*UpdateConfigurationMsg)(nil)

// Path fulfills vault.Msg interface to allow routing
func (LockMsg) Path() string {
	return pathLockMsg
}

// Path fulfills vault.Msg interface to allow routing
func (ReleaseMsg) Path() string {
	return pathReleaseMsg
}

// Path fulfills vault.Msg interface to allow routing
func (CancelMsg) Path() string {
	return pathCancelMsg
}

// Path fulfills vault.Msg interface to allow routing
func (UpdateConfigurationMsg) Path() string {
	return pathUpdateConfigurationMsg
}

// Validate makes sure that this is sensible
func (m *LockMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Recipient == nil {
		return errors.Wrap(errors.ErrEmpty, "recipient")
	}
	if err := m.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if m.Sender != nil {
		if err := m.Sender.Validate(); err != nil {
			return errors.Wrap(err, "sender")
		}
	}
	if m.Amount == nil || !m.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive lock: %#v", m.Amount)
	}
	if err := m.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	// A zero duration is legal, the lock is born already unlocked.
	if m.LockDuration < 0 {
		return errors.Wrap(errors.ErrInput, "lock duration must not be negative")
	}
	if err := m.LockDuration.Validate(); err != nil {
		return errors.Wrap(err, "invalid lock duration value")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo %s", m.Memo)
	}
	return nil
}

// Validate makes sure that this is sensible
func (m *ReleaseMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return validateLockID(m.LockID)
}

// Validate makes sure that this is sensible
func (m *CancelMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return validateLockID(m.LockID)
}

// Validate makes sure any included configuration patch is sensible
func (m *UpdateConfigurationMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.Patch == nil {
		return errors.Wrap(errors.ErrEmpty, "patch")
	}
	if len(m.Patch.Owner) != 0 {
		if err := m.Patch.Owner.Validate(); err != nil {
			return errors.Wrap(err, "patch owner")
		}
	}
	if m.Patch.Holder != 0 {
		if err := m.Patch.Holder.Validate(); err != nil {
			return err
		}
	}
	if m.Patch.CancelError != 0 {
		if err := m.Patch.CancelError.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func validateLockID(id []byte) error {
	if len(id) != 8 {
		return errors.Wrapf(errors.ErrInput, "lock id: %X", id)
	}
	return nil
}
