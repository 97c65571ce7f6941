package timelock

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/migration"
	"github.com/iov-one/vault/orm"
)

func init() {
	migration.MustRegister(1, &LockedFund{}, migration.NoModification)
}

var _ orm.CloneableData = (*LockedFund)(nil)

// Validate ensures the locked fund is valid
func (l *LockedFund) Validate() error {
	if err := l.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := l.Sender.Validate(); err != nil {
		return errors.Wrap(err, "sender")
	}
	if err := l.Recipient.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if err := l.Holder.Validate(); err != nil {
		return errors.Wrap(err, "holder")
	}
	if l.UnlockAt == 0 {
		// Zero unlock time is a valid value that dates to 1970-01-01.
		// We know that this value is in the past and makes no sense.
		// Most likely value was not provided and a zero value remained.
		return errors.Wrap(errors.ErrInput, "unlock time is required")
	}
	if err := l.UnlockAt.Validate(); err != nil {
		return errors.Wrap(err, "invalid unlock time value")
	}
	if len(l.Memo) > maxMemoSize {
		return errors.Wrapf(errors.ErrInput, "memo %s", l.Memo)
	}
	if err := l.Address.Validate(); err != nil {
		return errors.Wrap(err, "address")
	}
	return nil
}

// Copy makes a deep copy of this locked fund
func (l *LockedFund) Copy() orm.CloneableData {
	return &LockedFund{
		Metadata:  l.Metadata.Copy(),
		Sender:    l.Sender,
		Recipient: l.Recipient,
		Holder:    l.Holder,
		UnlockAt:  l.UnlockAt,
		Memo:      l.Memo,
		Address:   l.Address.Clone(),
	}
}

// Condition calculates the custody condition of a locked fund given
// the key
func Condition(key []byte) vault.Condition {
	return vault.NewCondition("timelock", "seq", key)
}

func NewBucket() orm.ModelBucket {
	b := orm.NewModelBucket("lock", &LockedFund{},
		orm.WithIDSequence(timelockSeq),
		orm.WithIndex("sender", idxSender, false),
		orm.WithIndex("recipient", idxRecipient, false),
		orm.WithIndex("holder", idxHolder, false),
	)
	return migration.NewModelBucket("timelock", b)
}

var timelockSeq = orm.NewSequence("timelock", "id")

// Pending returns the locked fund stored under the given id. Released
// and cancelled locks are deleted, their ids resolve to ErrNotFound
// forever.
func Pending(db vault.ReadOnlyKVStore, lockID []byte) (*LockedFund, error) {
	if err := validateLockID(lockID); err != nil {
		return nil, err
	}
	var lock LockedFund
	if err := NewBucket().One(db, lockID, &lock); err != nil {
		return nil, err
	}
	return &lock, nil
}

func toLockedFund(obj orm.Object) (*LockedFund, error) {
	if obj == nil {
		return nil, errors.Wrap(errors.ErrHuman, "Cannot take index of nil")
	}
	l, ok := obj.Value().(*LockedFund)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "Can only take index of LockedFund")
	}
	return l, nil
}

func idxSender(obj orm.Object) ([]byte, error) {
	l, err := toLockedFund(obj)
	if err != nil {
		return nil, err
	}
	return l.Sender, nil
}

func idxRecipient(obj orm.Object) ([]byte, error) {
	l, err := toLockedFund(obj)
	if err != nil {
		return nil, err
	}
	return l.Recipient, nil
}

func idxHolder(obj orm.Object) ([]byte, error) {
	l, err := toLockedFund(obj)
	if err != nil {
		return nil, err
	}
	return l.Holder, nil
}
