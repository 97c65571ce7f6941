package cash

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

// GenesisAccount is used to parse the json from genesis file
// use vault.Address, so address in hex, not base64
type GenesisAccount struct {
	Address vault.Address `json:"address"`
	Set
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ vault.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts vault.Options, params vault.GenesisParams, kv vault.KVStore) error {
	if err := gconf.InitConfig(kv, opts, "cash", &Configuration{}); err != nil {
		return errors.Wrap(err, "init config")
	}

	accts := []GenesisAccount{}
	if err := opts.ReadOptions("cash", &accts); err != nil {
		return err
	}
	bucket := NewBucket()
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return err
		}
		wallet, err := WalletWith(acct.Address, acct.Set.Coins...)
		if err != nil {
			return err
		}
		if err := bucket.Save(kv, wallet); err != nil {
			return err
		}
	}
	return nil
}
