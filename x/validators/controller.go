package validators

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

type CheckAddress func(address vault.Address) bool

// Controller decides if a validator diff can be applied.
type Controller interface {
	CanUpdateValidators(store vault.KVStore, checkAddress CheckAddress, diff []abci.ValidatorUpdate) ([]abci.ValidatorUpdate, error)
}

// BaseController is a simple implementation of controller.
type BaseController struct {
	bucket *AccountBucket
}

// NewController returns a basic controller implementation
func NewController() BaseController {
	return BaseController{bucket: NewAccountBucket()}
}

func (c BaseController) CanUpdateValidators(store vault.KVStore, checkAddress CheckAddress, diff []abci.ValidatorUpdate) ([]abci.ValidatorUpdate, error) {
	if len(diff) == 0 {
		return nil, errors.Wrap(ErrEmptyDiff, "diff")
	}

	accts, err := c.bucket.GetAccounts(store)
	if err != nil {
		return nil, err
	}

	if !HasPermission(AsVaultAccounts(accts), checkAddress) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no permission to update validators")
	}

	return diff, nil
}

// HasPermission returns true if any of the given accounts passes the
// address check.
func HasPermission(accounts VaultAccounts, checkAddress CheckAddress) bool {
	for _, addr := range accounts.Addresses {
		if checkAddress(addr) {
			return true
		}
	}
	return false
}
