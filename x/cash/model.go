package cash

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/migration"
	"github.com/iov-one/vault/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

func init() {
	migration.MustRegister(1, &Set{}, migration.NoModification)
}

var _ orm.CloneableData = (*Set)(nil)

// Validate requires that all coins are in alphabetical order
func (s *Set) Validate() error {
	if err := s.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	return coin.Coins(s.GetCoins()).Validate()
}

// Copy makes a new set with the same coins
func (s *Set) Copy() orm.CloneableData {
	return &Set{
		Metadata: s.Metadata.Copy(),
		Coins:    coin.Coins(s.GetCoins()).Clone(),
	}
}

// AsCoins will safely type-cast any value from Bucket to a Coins
func AsCoins(obj orm.Object) coin.Coins {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	wallet := obj.Value().(*Set)
	return coin.Coins(wallet.GetCoins())
}

// AsCoinage will safely type-cast any value from Bucket
func AsCoinage(obj orm.Object) Coinage {
	if obj == nil || obj.Value() == nil {
		return nil
	}
	return obj.Value().(Coinage)
}

// Coinage is any model that allows getting and setting coins,
// so we can use the same controller for wallets and other models
type Coinage interface {
	GetCoins() []*coin.Coin
	SetCoins([]*coin.Coin)
}

// SetCoins allows modifying the coins of a wallet
func (s *Set) SetCoins(coins []*coin.Coin) {
	s.Coins = coins
}

// Concat combines the coins to make sure they are sorted and rounded off,
// with no duplicates or 0 values.
func Concat(wallet Coinage, coins coin.Coins) error {
	joint, err := coin.Coins(wallet.GetCoins()).Combine(coins)
	if err != nil {
		return err
	}
	wallet.SetCoins(joint)
	return nil
}

// Add modifies the wallet to add Coin c
func Add(wallet Coinage, c coin.Coin) error {
	cs, err := coin.Coins(wallet.GetCoins()).Add(c)
	if err != nil {
		return err
	}
	wallet.SetCoins(cs)
	return nil
}

// Subtract modifies the wallet to remove Coin c
func Subtract(wallet Coinage, c coin.Coin) error {
	return Add(wallet, c.Negative())
}

// NewWallet creates an empty wallet with this address serves as an object
// for the bucket
func NewWallet(key vault.Address) orm.Object {
	return orm.NewSimpleObj(key, &Set{
		Metadata: &vault.Metadata{Schema: 1},
	})
}

// WalletWith creates an wallet with a balance
func WalletWith(key vault.Address, coins ...*coin.Coin) (orm.Object, error) {
	obj := NewWallet(key)
	err := Concat(AsCoinage(obj), coins)
	if err != nil {
		return nil, err
	}
	return obj, nil
}

//--- cash.Bucket - type-safe bucket

// Bucket is a type-safe wrapper around migration.Bucket
type Bucket struct {
	migration.Bucket
}

var _ WalletBucket = Bucket{}

// NewBucket initializes a cash.Bucket with default name
func NewBucket() Bucket {
	return Bucket{
		Bucket: migration.NewBucket("cash", BucketName, NewWallet(nil)),
	}
}

// GetOrCreate will return the object if found, or create one
// if not.
func (b Bucket) GetOrCreate(db vault.KVStore, key vault.Address) (orm.Object, error) {
	obj, err := b.Get(db, key)
	if err == nil && obj == nil {
		obj = NewWallet(key)
	}
	return obj, err
}

// WalletBucket is what we expect to be able to do with wallets
// The object it returns must support AsSet (only checked runtime :()
type WalletBucket interface {
	GetOrCreate(db vault.KVStore, key vault.Address) (orm.Object, error)
	Get(db vault.ReadOnlyKVStore, key []byte) (orm.Object, error)
	Save(db vault.KVStore, obj orm.Object) error
}

// ValidateWalletBucket makes sure that it supports Coinage objects,
// unfortunately this check is done runtime....
//
// panics on error (meant as a sanity check in app setup)
func ValidateWalletBucket(bucket WalletBucket) {
	// runtime check that the bucket produces Coinage objects
	obj, err := bucket.GetOrCreate(nil, vault.NewCondition("sig", "ed25519", []byte("foo")).Address())
	if err != nil {
		panic(err)
	}
	if obj == nil || obj.Value() == nil {
		panic("doensn't create anything")
	}
	// this panics if bad type
	AsCoinage(obj)
}
