package migration

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/codec"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

func init() {
	codec.RegisterConcrete(&Configuration{}, "vault/migration/Configuration")
}

// Configuration holds the migration extension setup. Only the admin is
// authorized to upgrade schema versions.
type Configuration struct {
	Metadata *vault.Metadata `json:"metadata"`
	// Admin holds the address of the administrator allowed to upgrade
	// schema versions.
	Admin vault.Address `json:"admin"`
}

func (c *Configuration) GetMetadata() *vault.Metadata {
	if c == nil {
		return nil
	}
	return c.Metadata
}

func (c *Configuration) Marshal() ([]byte, error) {
	return codec.Marshal(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, c)
}

func (c *Configuration) Validate() error {
	if err := c.Admin.Validate(); err != nil {
		return errors.Wrap(err, "admin")
	}
	return nil
}

// CurrentAdmin returns the migration extension admin address as currently
// configured. This function is intended to be used as the initial
// configuration admin source for other extensions.
func CurrentAdmin(db vault.ReadOnlyKVStore) (vault.Address, error) {
	var conf Configuration
	if err := gconf.Load(db, "migration", &conf); err != nil {
		return nil, errors.Wrap(err, "load configuration")
	}
	return conf.Admin, nil
}

func mustLoadConf(db gconf.Store) Configuration {
	var conf Configuration
	if err := gconf.Load(db, "migration", &conf); err != nil {
		err = errors.Wrap(err, "load configuration")
		panic(err)
	}
	return conf
}
