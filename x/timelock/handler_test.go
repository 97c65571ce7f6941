package timelock

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
	"github.com/iov-one/vault/migration"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest"
	"github.com/iov-one/vault/vaulttest/assert"
	"github.com/iov-one/vault/x/cash"
)

var (
	blockNow = time.Unix(1000000, 0)

	sender    = vault.NewCondition("sigs", "ed25519", []byte{1, 2, 3}).Address()
	recipient = vault.NewCondition("sigs", "ed25519", []byte{4, 5, 6}).Address()
	stranger  = vault.NewCondition("sigs", "ed25519", []byte{7, 8, 9}).Address()
)

func newTestEnv(t testing.TB, conf Configuration) (vault.KVStore, cash.Controller) {
	t.Helper()

	kv := store.MemStore()
	migration.MustInitPkg(kv, "timelock", "cash")
	if conf.Metadata == nil {
		conf.Metadata = &vault.Metadata{Schema: 1}
	}
	if err := gconf.Save(kv, "timelock", &conf); err != nil {
		t.Fatalf("cannot save configuration: %+v", err)
	}
	return kv, cash.NewController(cash.NewBucket())
}

func fundWallet(t testing.TB, kv vault.KVStore, addr vault.Address, coins ...*coin.Coin) {
	t.Helper()

	obj, err := cash.WalletWith(addr, coins...)
	assert.Nil(t, err)
	assert.Nil(t, cash.NewBucket().Save(kv, obj))
}

func lockFunds(t testing.TB, kv vault.KVStore, ctrl cash.Controller, amount coin.Coin, duration vault.UnixDuration) []byte {
	t.Helper()

	auth := &vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{1, 2, 3})}
	h := LockHandler{auth, NewBucket(), ctrl}
	ctx := vault.WithBlockTime(context.Background(), blockNow)
	tx := &vaulttest.Tx{Msg: &LockMsg{
		Metadata:     &vault.Metadata{Schema: 1},
		Recipient:    recipient,
		Amount:       &amount,
		LockDuration: duration,
	}}
	res, err := h.Deliver(ctx, kv, tx)
	assert.Nil(t, err)
	return res.Data
}

func TestLockHandler(t *testing.T) {
	foo := coin.NewCoin(100, 0, "FOO")

	cases := map[string]struct {
		signer         vault.Condition
		fund           bool
		msg            vault.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
	}{
		"sender defaults to the main signer": {
			signer: vault.NewCondition("sigs", "ed25519", []byte{1, 2, 3}),
			fund:   true,
			msg: &LockMsg{
				Metadata:     &vault.Metadata{Schema: 1},
				Recipient:    recipient,
				Amount:       &foo,
				LockDuration: 10,
			},
		},
		"explicit sender must sign": {
			signer: vault.NewCondition("sigs", "ed25519", []byte{4, 5, 6}),
			fund:   true,
			msg: &LockMsg{
				Metadata:     &vault.Metadata{Schema: 1},
				Sender:       sender,
				Recipient:    recipient,
				Amount:       &foo,
				LockDuration: 10,
			},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
		},
		"missing recipient": {
			signer: vault.NewCondition("sigs", "ed25519", []byte{1, 2, 3}),
			fund:   true,
			msg: &LockMsg{
				Metadata:     &vault.Metadata{Schema: 1},
				Amount:       &foo,
				LockDuration: 10,
			},
			wantCheckErr:   errors.ErrEmpty,
			wantDeliverErr: errors.ErrEmpty,
		},
		"negative lock duration": {
			signer: vault.NewCondition("sigs", "ed25519", []byte{1, 2, 3}),
			fund:   true,
			msg: &LockMsg{
				Metadata:     &vault.Metadata{Schema: 1},
				Recipient:    recipient,
				Amount:       &foo,
				LockDuration: -10,
			},
			wantCheckErr:   errors.ErrInput,
			wantDeliverErr: errors.ErrInput,
		},
		"sender without an account": {
			signer: vault.NewCondition("sigs", "ed25519", []byte{1, 2, 3}),
			msg: &LockMsg{
				Metadata:     &vault.Metadata{Schema: 1},
				Recipient:    recipient,
				Amount:       &foo,
				LockDuration: 10,
			},
			wantDeliverErr: errors.ErrEmpty,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv, ctrl := newTestEnv(t, Configuration{Holder: HolderRecipient, CancelError: CancelErrorShared})
			if tc.fund {
				fundWallet(t, kv, tc.signer.Address(), &foo)
			}

			auth := &vaulttest.Auth{Signer: tc.signer}
			h := LockHandler{auth, NewBucket(), ctrl}
			ctx := vault.WithBlockTime(context.Background(), blockNow)
			tx := &vaulttest.Tx{Msg: tc.msg}

			_, err := h.Check(ctx, kv, tx)
			if tc.wantCheckErr != nil {
				if !tc.wantCheckErr.Is(err) {
					t.Fatalf("unexpected check error: %+v", err)
				}
			} else {
				assert.Nil(t, err)
			}

			res, err := h.Deliver(ctx, kv, tx)
			if tc.wantDeliverErr != nil {
				if !tc.wantDeliverErr.Is(err) {
					t.Fatalf("unexpected deliver error: %+v", err)
				}
				return
			}
			assert.Nil(t, err)

			var lock LockedFund
			assert.Nil(t, NewBucket().One(kv, res.Data, &lock))
			assert.Equal(t, tc.signer.Address(), lock.Sender)
			assert.Equal(t, recipient, lock.Recipient)
			assert.Equal(t, vault.AsUnixTime(blockNow)+10, lock.UnlockAt)

			// the deposit moved to the custody account
			got, err := ctrl.Balance(kv, lock.Address)
			assert.Nil(t, err)
			assert.Equal(t, true, got.Contains(foo))
		})
	}
}

func TestZeroDurationLockIsBornUnlocked(t *testing.T) {
	foo := coin.NewCoin(25, 0, "FOO")
	kv, ctrl := newTestEnv(t, Configuration{Holder: HolderRecipient, CancelError: CancelErrorShared})
	fundWallet(t, kv, sender, &foo)
	key := lockFunds(t, kv, ctrl, foo, 0)

	// the same block time that created the lock can release it
	sameBlock := vault.WithBlockTime(context.Background(), blockNow)
	release := ReleaseHandler{
		&vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{4, 5, 6})},
		NewBucket(), ctrl,
	}
	tx := &vaulttest.Tx{Msg: &ReleaseMsg{Metadata: &vault.Metadata{Schema: 1}, LockID: key}}
	if _, err := release.Deliver(sameBlock, kv, tx); err != nil {
		t.Fatalf("release: %+v", err)
	}

	got, err := ctrl.Balance(kv, recipient)
	assert.Nil(t, err)
	assert.Equal(t, true, got.Contains(foo))
}

func TestLockEmitsTags(t *testing.T) {
	foo := coin.NewCoin(100, 0, "FOO")
	kv, ctrl := newTestEnv(t, Configuration{Holder: HolderRecipient, CancelError: CancelErrorShared})
	fundWallet(t, kv, sender, &foo)

	auth := &vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{1, 2, 3})}
	h := LockHandler{auth, NewBucket(), ctrl}
	ctx := vault.WithBlockTime(context.Background(), blockNow)
	tx := &vaulttest.Tx{Msg: &LockMsg{
		Metadata:     &vault.Metadata{Schema: 1},
		Recipient:    recipient,
		Amount:       &foo,
		LockDuration: 10,
	}}
	res, err := h.Deliver(ctx, kv, tx)
	assert.Nil(t, err)

	want := map[string]string{
		tagLockID:    string(res.Data),
		tagSender:    string(sender),
		tagRecipient: string(recipient),
		tagHolder:    string(recipient),
		tagAmount:    "100 FOO",
		tagAction:    "lock",
	}
	assert.Equal(t, len(want), len(res.Tags))
	for _, tag := range res.Tags {
		assert.Equal(t, want[string(tag.Key)], string(tag.Value))
	}
}

func TestReleaseEmitsTags(t *testing.T) {
	foo := coin.NewCoin(100, 0, "FOO")
	kv, ctrl := newTestEnv(t, Configuration{Holder: HolderRecipient, CancelError: CancelErrorShared})
	fundWallet(t, kv, sender, &foo)
	key := lockFunds(t, kv, ctrl, foo, 10)

	atUnlock := vault.WithBlockTime(context.Background(), blockNow.Add(10*time.Second))
	release := ReleaseHandler{
		&vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{4, 5, 6})},
		NewBucket(), ctrl,
	}
	tx := &vaulttest.Tx{Msg: &ReleaseMsg{Metadata: &vault.Metadata{Schema: 1}, LockID: key}}
	res, err := release.Deliver(atUnlock, kv, tx)
	assert.Nil(t, err)

	want := map[string]string{
		tagLockID:    string(key),
		tagRecipient: string(recipient),
		tagAmount:    "100 FOO",
		tagAction:    "release",
	}
	assert.Equal(t, len(want), len(res.Tags))
	for _, tag := range res.Tags {
		assert.Equal(t, want[string(tag.Key)], string(tag.Value))
	}
}

func TestCancelEmitsTags(t *testing.T) {
	foo := coin.NewCoin(100, 0, "FOO")
	kv, ctrl := newTestEnv(t, Configuration{Holder: HolderRecipient, CancelError: CancelErrorShared})
	fundWallet(t, kv, sender, &foo)
	key := lockFunds(t, kv, ctrl, foo, 10)

	midway := vault.WithBlockTime(context.Background(), blockNow.Add(5*time.Second))
	cancel := CancelHandler{
		&vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{1, 2, 3})},
		NewBucket(), ctrl,
	}
	tx := &vaulttest.Tx{Msg: &CancelMsg{Metadata: &vault.Metadata{Schema: 1}, LockID: key}}
	res, err := cancel.Deliver(midway, kv, tx)
	assert.Nil(t, err)

	want := map[string]string{
		tagLockID: string(key),
		tagSender: string(sender),
		tagAmount: "100 FOO",
		tagAction: "cancel",
	}
	assert.Equal(t, len(want), len(res.Tags))
	for _, tag := range res.Tags {
		assert.Equal(t, want[string(tag.Key)], string(tag.Value))
	}
}

func TestCancelBeforeUnlock(t *testing.T) {
	foo := coin.NewCoin(100, 0, "FOO")
	kv, ctrl := newTestEnv(t, Configuration{Holder: HolderRecipient, CancelError: CancelErrorShared})
	fundWallet(t, kv, sender, &foo)
	key := lockFunds(t, kv, ctrl, foo, 10)

	midway := vault.WithBlockTime(context.Background(), blockNow.Add(5*time.Second))

	// the recipient cannot release before the unlock time
	release := ReleaseHandler{
		&vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{4, 5, 6})},
		NewBucket(), ctrl,
	}
	tx := &vaulttest.Tx{Msg: &ReleaseMsg{Metadata: &vault.Metadata{Schema: 1}, LockID: key}}
	if _, err := release.Deliver(midway, kv, tx); !ErrTimeLocked.Is(err) {
		t.Fatalf("premature release: %+v", err)
	}

	// the sender can still take the deposit back
	cancel := CancelHandler{
		&vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{1, 2, 3})},
		NewBucket(), ctrl,
	}
	cancelTx := &vaulttest.Tx{Msg: &CancelMsg{Metadata: &vault.Metadata{Schema: 1}, LockID: key}}
	if _, err := cancel.Deliver(midway, kv, cancelTx); err != nil {
		t.Fatalf("cancel: %+v", err)
	}

	refunded, err := ctrl.Balance(kv, sender)
	assert.Nil(t, err)
	assert.Equal(t, true, refunded.Contains(foo))

	// the lock record is gone
	var lock LockedFund
	if err := NewBucket().One(kv, key, &lock); !errors.ErrNotFound.Is(err) {
		t.Fatalf("lock still resolves: %+v", err)
	}
}

func TestReleaseAtUnlock(t *testing.T) {
	foo := coin.NewCoin(50, 0, "FOO")
	kv, ctrl := newTestEnv(t, Configuration{Holder: HolderRecipient, CancelError: CancelErrorShared})
	fundWallet(t, kv, sender, &foo)
	key := lockFunds(t, kv, ctrl, foo, 10)

	// the unlock time itself is good enough
	atUnlock := vault.WithBlockTime(context.Background(), blockNow.Add(10*time.Second))
	release := ReleaseHandler{
		&vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{4, 5, 6})},
		NewBucket(), ctrl,
	}
	tx := &vaulttest.Tx{Msg: &ReleaseMsg{Metadata: &vault.Metadata{Schema: 1}, LockID: key}}
	if _, err := release.Deliver(atUnlock, kv, tx); err != nil {
		t.Fatalf("release: %+v", err)
	}

	got, err := ctrl.Balance(kv, recipient)
	assert.Nil(t, err)
	assert.Equal(t, true, got.Contains(foo))

	// a disposed lock cannot be cancelled anymore
	cancel := CancelHandler{
		&vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{1, 2, 3})},
		NewBucket(), ctrl,
	}
	cancelTx := &vaulttest.Tx{Msg: &CancelMsg{Metadata: &vault.Metadata{Schema: 1}, LockID: key}}
	if _, err := cancel.Deliver(atUnlock, kv, cancelTx); !errors.ErrNotFound.Is(err) {
		t.Fatalf("cancel of a disposed lock: %+v", err)
	}
}

func TestReleaseOnlyByRecipient(t *testing.T) {
	foo := coin.NewCoin(100, 0, "FOO")
	kv, ctrl := newTestEnv(t, Configuration{Holder: HolderRecipient, CancelError: CancelErrorShared})
	fundWallet(t, kv, sender, &foo)
	key := lockFunds(t, kv, ctrl, foo, 10)

	afterUnlock := vault.WithBlockTime(context.Background(), blockNow.Add(20*time.Second))
	tx := &vaulttest.Tx{Msg: &ReleaseMsg{Metadata: &vault.Metadata{Schema: 1}, LockID: key}}

	// a stranger is rejected even after the unlock time
	release := ReleaseHandler{
		&vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{7, 8, 9})},
		NewBucket(), ctrl,
	}
	if _, err := release.Deliver(afterUnlock, kv, tx); !ErrNotRecipient.Is(err) {
		t.Fatalf("stranger release: %+v", err)
	}

	// the sender cannot release either
	release = ReleaseHandler{
		&vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{1, 2, 3})},
		NewBucket(), ctrl,
	}
	if _, err := release.Deliver(afterUnlock, kv, tx); !ErrNotRecipient.Is(err) {
		t.Fatalf("sender release: %+v", err)
	}

	release = ReleaseHandler{
		&vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{4, 5, 6})},
		NewBucket(), ctrl,
	}
	if _, err := release.Deliver(afterUnlock, kv, tx); err != nil {
		t.Fatalf("recipient release: %+v", err)
	}
}

func TestCancelOnlyBySender(t *testing.T) {
	foo := coin.NewCoin(100, 0, "FOO")
	kv, ctrl := newTestEnv(t, Configuration{Holder: HolderRecipient, CancelError: CancelErrorShared})
	fundWallet(t, kv, sender, &foo)
	key := lockFunds(t, kv, ctrl, foo, 10)

	midway := vault.WithBlockTime(context.Background(), blockNow.Add(5*time.Second))
	tx := &vaulttest.Tx{Msg: &CancelMsg{Metadata: &vault.Metadata{Schema: 1}, LockID: key}}

	cancel := CancelHandler{
		&vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{4, 5, 6})},
		NewBucket(), ctrl,
	}
	if _, err := cancel.Deliver(midway, kv, tx); !ErrNotSender.Is(err) {
		t.Fatalf("recipient cancel: %+v", err)
	}
}

func TestCancelAfterUnlock(t *testing.T) {
	cases := map[string]struct {
		conf    Configuration
		wantErr *errors.Error
	}{
		"shared error policy": {
			conf:    Configuration{Holder: HolderRecipient, CancelError: CancelErrorShared},
			wantErr: ErrTimeLocked,
		},
		"distinct error policy": {
			conf:    Configuration{Holder: HolderRecipient, CancelError: CancelErrorDistinct},
			wantErr: ErrLockElapsed,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			foo := coin.NewCoin(100, 0, "FOO")
			kv, ctrl := newTestEnv(t, tc.conf)
			fundWallet(t, kv, sender, &foo)
			key := lockFunds(t, kv, ctrl, foo, 10)

			afterUnlock := vault.WithBlockTime(context.Background(), blockNow.Add(11*time.Second))
			cancel := CancelHandler{
				&vaulttest.Auth{Signer: vault.NewCondition("sigs", "ed25519", []byte{1, 2, 3})},
				NewBucket(), ctrl,
			}
			tx := &vaulttest.Tx{Msg: &CancelMsg{Metadata: &vault.Metadata{Schema: 1}, LockID: key}}
			if _, err := cancel.Deliver(afterUnlock, kv, tx); !tc.wantErr.Is(err) {
				t.Fatalf("late cancel: %+v", err)
			}
		})
	}
}

func TestHolderPolicy(t *testing.T) {
	cases := map[string]struct {
		conf       Configuration
		wantHolder vault.Address
	}{
		"recipient holds the deposit": {
			conf:       Configuration{Holder: HolderRecipient, CancelError: CancelErrorShared},
			wantHolder: recipient,
		},
		"sender holds the deposit": {
			conf:       Configuration{Holder: HolderSender, CancelError: CancelErrorShared},
			wantHolder: sender,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			foo := coin.NewCoin(100, 0, "FOO")
			kv, ctrl := newTestEnv(t, tc.conf)
			fundWallet(t, kv, sender, &foo)
			key := lockFunds(t, kv, ctrl, foo, 10)

			var lock LockedFund
			assert.Nil(t, NewBucket().One(kv, key, &lock))
			assert.Equal(t, tc.wantHolder, lock.Holder)

			var locks []LockedFund
			keys, err := NewBucket().ByIndex(kv, "holder", tc.wantHolder, &locks)
			assert.Nil(t, err)
			assert.Equal(t, 1, len(keys))
		})
	}
}
