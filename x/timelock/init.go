package timelock

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

// GenesisLock is used to parse a pre-seeded lock from the genesis
// file. Identifiers are assigned from the sequence in declaration
// order, the custody accounts must be funded through the cash genesis.
type GenesisLock struct {
	Sender    vault.Address  `json:"sender"`
	Recipient vault.Address  `json:"recipient"`
	UnlockAt  vault.UnixTime `json:"unlock_at"`
	Memo      string         `json:"memo,omitempty"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ vault.Initializer = Initializer{}

// FromGenesis will parse initial lock info from genesis and save it
// to the database
func (Initializer) FromGenesis(opts vault.Options, params vault.GenesisParams, kv vault.KVStore) error {
	conf := Configuration{}
	if err := gconf.InitConfig(kv, opts, "timelock", &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	locks := []GenesisLock{}
	if err := opts.ReadOptions("timelock", &locks); err != nil {
		return err
	}
	bucket := NewBucket()
	for i, l := range locks {
		holder := l.Recipient
		if conf.Holder == HolderSender {
			holder = l.Sender
		}
		key, err := timelockSeq.NextVal(kv)
		if err != nil {
			return errors.Wrap(err, "cannot acquire key")
		}
		lock := &LockedFund{
			Metadata:  &vault.Metadata{},
			Sender:    l.Sender,
			Recipient: l.Recipient,
			Holder:    holder,
			UnlockAt:  l.UnlockAt,
			Memo:      l.Memo,
			Address:   Condition(key).Address(),
		}
		if _, err := bucket.Put(kv, key, lock); err != nil {
			return errors.Wrapf(err, "cannot store lock #%d", i)
		}
	}
	return nil
}
