package cash

import (
	"testing"

	"github.com/iov-one/vault"
	coin "github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/migration"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestMoveCoins(t *testing.T) {
	perm1 := vault.NewCondition("sig", "ed25519", []byte{1, 2, 3})
	perm2 := vault.NewCondition("sig", "ed25519", []byte{4, 5, 6})
	addr1 := perm1.Address()
	addr2 := perm2.Address()

	plus := coin.NewCoin(500, 1000, "FOO")
	minus := coin.NewCoin(-400, -600, "FOO")
	total := coin.NewCoin(100, 400, "FOO")
	other := coin.NewCoin(1, 0, "DING")

	cases := map[string]struct {
		initSrc  []*coin.Coin
		amount   coin.Coin
		wantErr  *errors.Error
		wantSrc  coin.Coins
		wantDest coin.Coins
	}{
		"cannot move from empty wallet": {
			amount:  plus,
			wantErr: errors.ErrEmpty,
		},
		"cannot move negative": {
			initSrc: []*coin.Coin{&plus},
			amount:  minus,
			wantErr: errors.ErrAmount,
			wantSrc: coin.Coins{&plus},
		},
		"cannot move zero": {
			initSrc: []*coin.Coin{&plus},
			amount:  coin.Coin{Ticker: "FOO"},
			wantErr: errors.ErrAmount,
			wantSrc: coin.Coins{&plus},
		},
		"cannot move more than available": {
			initSrc: []*coin.Coin{&total},
			amount:  plus,
			wantErr: errors.ErrAmount,
			wantSrc: coin.Coins{&total},
		},
		"cannot move a different currency": {
			initSrc: []*coin.Coin{&plus},
			amount:  other,
			wantErr: errors.ErrAmount,
			wantSrc: coin.Coins{&plus},
		},
		"move partial funds": {
			initSrc:  []*coin.Coin{&plus},
			amount:   total,
			wantSrc:  mustCombine(plus, total.Negative()),
			wantDest: coin.Coins{&total},
		},
		"move all funds": {
			initSrc:  []*coin.Coin{&total},
			amount:   total,
			wantSrc:  nil,
			wantDest: coin.Coins{&total},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			kv := store.MemStore()
			migration.MustInitPkg(kv, "cash")
			bucket := NewBucket()
			controller := NewController(bucket)

			if len(tc.initSrc) != 0 {
				obj, err := WalletWith(addr1, tc.initSrc...)
				assert.Nil(t, err)
				assert.Nil(t, bucket.Save(kv, obj))
			}

			err := controller.MoveCoins(kv, addr1, addr2, tc.amount)
			if tc.wantErr != nil {
				if !tc.wantErr.Is(err) {
					t.Fatalf("unexpected error: %+v", err)
				}
			} else {
				assert.Nil(t, err)
			}

			assertBalance(t, kv, bucket, addr1, tc.wantSrc)
			assertBalance(t, kv, bucket, addr2, tc.wantDest)
		})
	}
}

func TestCoinMint(t *testing.T) {
	perm := vault.NewCondition("sig", "ed25519", []byte{1, 2, 3})
	addr := perm.Address()

	kv := store.MemStore()
	migration.MustInitPkg(kv, "cash")
	bucket := NewBucket()
	controller := NewController(bucket)

	// issue to a new wallet
	assert.Nil(t, controller.CoinMint(kv, addr, coin.NewCoin(100, 0, "FOO")))
	got, err := controller.Balance(kv, addr)
	assert.Nil(t, err)
	assert.Equal(t, true, got.Contains(coin.NewCoin(100, 0, "FOO")))

	// the lord taketh away
	assert.Nil(t, controller.CoinMint(kv, addr, coin.NewCoin(-30, 0, "FOO")))
	got, err = controller.Balance(kv, addr)
	assert.Nil(t, err)
	assert.Equal(t, true, got.Contains(coin.NewCoin(70, 0, "FOO")))

	// but not below zero
	if err := controller.CoinMint(kv, addr, coin.NewCoin(-500, 0, "FOO")); err == nil {
		t.Fatal("expected an error when issuing below zero")
	}
}

func TestBalanceMissingWallet(t *testing.T) {
	kv := store.MemStore()
	migration.MustInitPkg(kv, "cash")
	controller := NewController(NewBucket())

	perm := vault.NewCondition("sig", "ed25519", []byte{9, 9, 9})
	if _, err := controller.Balance(kv, perm.Address()); !errors.ErrNotFound.Is(err) {
		t.Fatalf("unexpected error: %+v", err)
	}
}

func assertBalance(t *testing.T, kv vault.KVStore, bucket Bucket, addr vault.Address, want coin.Coins) {
	t.Helper()

	obj, err := bucket.Get(kv, addr)
	assert.Nil(t, err)
	got := AsCoins(obj)
	if !got.Equals(want) {
		t.Fatalf("wallet %s: got %v, want %v", addr, got, want)
	}
}

func mustCombine(cs ...coin.Coin) coin.Coins {
	var res coin.Coins
	for _, c := range cs {
		next, err := res.Add(c)
		if err != nil {
			panic(err)
		}
		res = next
	}
	return res
}
