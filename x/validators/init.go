package validators

import (
	"github.com/iov-one/vault"
)

const optKey = "update_validators"

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ vault.Initializer = Initializer{}

// FromGenesis will parse the accounts allowed to update the validator
// set from genesis and save them to the database. It also persists the
// initial validator set.
func (Initializer) FromGenesis(opts vault.Options, params vault.GenesisParams, kv vault.KVStore) error {
	accounts := VaultAccounts{}
	if err := opts.ReadOptions(optKey, &accounts); err != nil {
		return err
	}
	if err := accounts.Validate(); err != nil {
		return err
	}

	bucket := NewAccountBucket()
	if err := bucket.Save(kv, AccountsWith(accounts)); err != nil {
		return err
	}

	vu := vault.ValidatorUpdatesFromABCI(params.Validators)
	if err := vu.Validate(); err != nil {
		return err
	}
	return vu.Store(kv)
}
