package timelock

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/migration"
	"github.com/iov-one/vault/orm"
	"github.com/iov-one/vault/x"
	"github.com/iov-one/vault/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// pay lock cost up-front
	lockTxCost    int64 = 300
	releaseTxCost int64 = 0
	cancelTxCost  int64 = 0

	tagLockID    = "timelock-id"
	tagSender    = "sender"
	tagRecipient = "recipient"
	tagHolder    = "holder"
	tagAmount    = "amount"
	tagAction    = "action"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r vault.Registry, auth x.Authenticator, cashctrl cash.Controller) {
	r = migration.SchemaMigratingRegistry("timelock", r)
	bucket := NewBucket()

	r.Handle(&LockMsg{}, LockHandler{auth, bucket, cashctrl})
	r.Handle(&ReleaseMsg{}, ReleaseHandler{auth, bucket, cashctrl})
	r.Handle(&CancelMsg{}, CancelHandler{auth, bucket, cashctrl})
	r.Handle(&UpdateConfigurationMsg{}, NewConfigHandler(auth))
}

// RegisterQuery will register this bucket as "/timelocks"
func RegisterQuery(qr vault.QueryRouter) {
	NewBucket().Register("timelocks", qr)
}

// LockHandler takes a deposit from the sender and locks it on a
// custody account.
type LockHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.CoinMover
}

var _ vault.Handler = LockHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h LockHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	_, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	res := &vault.CheckResult{
		GasAllocated: lockTxCost,
	}
	return res, nil
}

// Deliver moves the tokens from the sender to the custody account if
// all preconditions are met.
func (h LockHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// apply a default for sender
	sender := msg.Sender
	if sender == nil {
		sender = x.MainSigner(ctx, h.auth).Address()
	}

	blockTime, err := vault.BlockTime(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "block time")
	}
	unlockAt := vault.AsUnixTime(blockTime).Add(msg.LockDuration.Duration())

	holder := msg.Recipient
	if mustLoadConf(db).Holder == HolderSender {
		holder = sender
	}

	key, err := timelockSeq.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "cannot acquire key")
	}

	lock := &LockedFund{
		Metadata:  &vault.Metadata{},
		Sender:    sender,
		Recipient: msg.Recipient,
		Holder:    holder,
		UnlockAt:  unlockAt,
		Memo:      msg.Memo,
		Address:   Condition(key).Address(),
	}
	if _, err := h.bucket.Put(db, key, lock); err != nil {
		return nil, errors.Wrap(err, "cannot store locked fund")
	}

	// Deposit to the custody account.
	if err := cash.MoveCoins(db, h.bank, lock.Sender, lock.Address, []*coin.Coin{msg.Amount}); err != nil {
		return nil, err
	}

	res := &vault.DeliverResult{Data: key}
	res.Tags = append(res.Tags, []common.KVPair{
		{Key: []byte(tagLockID), Value: key},
		{Key: []byte(tagSender), Value: lock.Sender},
		{Key: []byte(tagRecipient), Value: lock.Recipient},
		{Key: []byte(tagHolder), Value: lock.Holder},
		{Key: []byte(tagAmount), Value: []byte(msg.Amount.String())},
		{Key: []byte(tagAction), Value: []byte("lock")},
	}...)
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h LockHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*LockMsg, error) {
	var msg LockMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}

	// Sender must authorize this (if not set, defaults to MainSigner).
	if msg.Sender != nil {
		if !h.auth.HasAddress(ctx, msg.Sender) {
			return nil, errors.ErrUnauthorized
		}
	}

	return &msg, nil
}

// ReleaseHandler pays a locked deposit out to the recipient once the
// unlock time was reached. The lock record is deleted afterwards.
type ReleaseHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ vault.Handler = ReleaseHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h ReleaseHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	_, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	return &vault.CheckResult{GasAllocated: releaseTxCost}, nil
}

// Deliver moves all the tokens from the custody account to the
// recipient if all preconditions are met.
func (h ReleaseHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, lock, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	available, err := h.bank.Balance(db, lock.Address)
	if err != nil {
		return nil, err
	}
	if err := cash.MoveCoins(db, h.bank, lock.Address, lock.Recipient, available); err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, msg.LockID); err != nil {
		return nil, err
	}

	res := &vault.DeliverResult{Data: msg.LockID}
	res.Tags = append(res.Tags, []common.KVPair{
		{Key: []byte(tagLockID), Value: msg.LockID},
		{Key: []byte(tagRecipient), Value: lock.Recipient},
	}...)
	for _, c := range available {
		res.Tags = append(res.Tags, common.KVPair{Key: []byte(tagAmount), Value: []byte(c.String())})
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(tagAction), Value: []byte("release")})
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
// The recipient check runs before the time check so that a stranger is
// always reported as such, no matter the clock.
func (h ReleaseHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*ReleaseMsg, *LockedFund, error) {
	var msg ReleaseMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	var lock LockedFund
	if err := h.bucket.One(db, msg.LockID, &lock); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load locked fund from the store")
	}

	if !h.auth.HasAddress(ctx, lock.Recipient) {
		return nil, nil, ErrNotRecipient
	}

	if !vault.IsExpired(ctx, lock.UnlockAt) {
		return nil, nil, errors.Wrapf(ErrTimeLocked, "funds locked until %v", lock.UnlockAt)
	}

	return &msg, &lock, nil
}

// CancelHandler refunds a locked deposit to the sender before the
// unlock time was reached. The lock record is deleted afterwards.
type CancelHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	bank   cash.Controller
}

var _ vault.Handler = CancelHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CancelHandler) Check(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.CheckResult, error) {
	_, _, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	return &vault.CheckResult{GasAllocated: cancelTxCost}, nil
}

// Deliver moves all the tokens from the custody account back to the
// sender if all preconditions are met.
func (h CancelHandler) Deliver(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*vault.DeliverResult, error) {
	msg, lock, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	available, err := h.bank.Balance(db, lock.Address)
	if err != nil {
		return nil, err
	}
	if err := cash.MoveCoins(db, h.bank, lock.Address, lock.Sender, available); err != nil {
		return nil, err
	}
	if err := h.bucket.Delete(db, msg.LockID); err != nil {
		return nil, err
	}

	res := &vault.DeliverResult{Data: msg.LockID}
	res.Tags = append(res.Tags, []common.KVPair{
		{Key: []byte(tagLockID), Value: msg.LockID},
		{Key: []byte(tagSender), Value: lock.Sender},
	}...)
	for _, c := range available {
		res.Tags = append(res.Tags, common.KVPair{Key: []byte(tagAmount), Value: []byte(c.String())})
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(tagAction), Value: []byte("cancel")})
	return res, nil
}

// validate does all common pre-processing between Check and Deliver.
// The sender check runs before the time check so that a stranger is
// always reported as such, no matter the clock.
func (h CancelHandler) validate(ctx vault.Context, db vault.KVStore, tx vault.Tx) (*CancelMsg, *LockedFund, error) {
	var msg CancelMsg
	if err := vault.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	var lock LockedFund
	if err := h.bucket.One(db, msg.LockID, &lock); err != nil {
		return nil, nil, errors.Wrap(err, "cannot load locked fund from the store")
	}

	if !h.auth.HasAddress(ctx, lock.Sender) {
		return nil, nil, ErrNotSender
	}

	if vault.IsExpired(ctx, lock.UnlockAt) {
		if mustLoadConf(db).CancelError == CancelErrorDistinct {
			return nil, nil, errors.Wrapf(ErrLockElapsed, "lock elapsed at %v", lock.UnlockAt)
		}
		return nil, nil, errors.Wrapf(ErrTimeLocked, "lock elapsed at %v", lock.UnlockAt)
	}

	return &msg, &lock, nil
}

func NewConfigHandler(auth x.Authenticator) vault.Handler {
	var conf Configuration
	return gconf.NewUpdateConfigurationHandler("timelock", &conf, auth, migration.CurrentAdmin)
}
