package cash

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/coin"
	"github.com/iov-one/vault/errors"
)

// Controller is the functionality needed by the handlers and decorators
// in this package. BaseController should work plenty fine, but you can
// add other logic if so desired.
type Controller interface {
	CoinMover
	CoinMinter
	Balance(vault.KVStore, vault.Address) (coin.Coins, error)
}

// CoinMover is the interface that must be implemented to move coins
// between wallets.
type CoinMover interface {
	MoveCoins(store vault.KVStore, src vault.Address, dest vault.Address, amount coin.Coin) error
}

// CoinMinter is the interface that must be implemented to issue new
// coins to a wallet.
type CoinMinter interface {
	CoinMint(store vault.KVStore, dest vault.Address, amount coin.Coin) error
}

// BaseController implements the Controller interface, using a
// WalletBucket as the storage engine.
type BaseController struct {
	bucket WalletBucket
}

var _ Controller = BaseController{}

// NewController returns a base controller implementation.
func NewController(bucket WalletBucket) BaseController {
	ValidateWalletBucket(bucket)
	return BaseController{bucket: bucket}
}

// Balance returns the amount of funds stored under the given address.
func (c BaseController) Balance(store vault.KVStore, src vault.Address) (coin.Coins, error) {
	state, err := c.bucket.Get(store, src)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get wallet")
	}
	if state == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "no wallet")
	}
	return AsCoins(state), nil
}

// MoveCoins moves the given amount from src to dest.
// If src doesn't exist, or doesn't have sufficient coins, it fails.
func (c BaseController) MoveCoins(store vault.KVStore,
	src vault.Address, dest vault.Address, amount coin.Coin) error {

	if amount.IsZero() {
		return errors.Wrap(errors.ErrAmount, "zero value")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %#v", &amount)
	}

	sender, err := c.bucket.Get(store, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "account %s", src)
	}
	if !AsCoins(sender).Contains(amount) {
		return errors.Wrap(errors.ErrAmount, "insufficient funds")
	}

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := Subtract(AsCoinage(sender), amount); err != nil {
		return err
	}
	if err := Add(AsCoinage(recipient), amount); err != nil {
		return err
	}
	if err := c.bucket.Save(store, sender); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}

// CoinMint attempts to add the given amount of coins to
// the destination address. Fails if it overflows the wallet.
//
// Note the amount may also be negative:
// "the lord giveth and the lord taketh away"
func (c BaseController) CoinMint(store vault.KVStore,
	dest vault.Address, amount coin.Coin) error {

	recipient, err := c.bucket.GetOrCreate(store, dest)
	if err != nil {
		return err
	}
	if err := Add(AsCoinage(recipient), amount); err != nil {
		return err
	}
	return c.bucket.Save(store, recipient)
}
