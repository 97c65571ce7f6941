package validators

import (
	"fmt"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/migration"
	"github.com/iov-one/vault/orm"
)

func init() {
	migration.MustRegister(1, &Accounts{}, migration.NoModification)
}

const (
	// bucketName contains address that are allowed to update validators
	bucketName     = "uvalid"
	accountListKey = "accounts"
)

// VaultAccounts is used to parse the json from genesis file
// use vault.Address, so address in hex, not base64
type VaultAccounts struct {
	Addresses []vault.Address `json:"addresses"`
}

func (va VaultAccounts) Validate() error {
	var errs error
	for i, v := range va.Addresses {
		errs = errors.AppendField(errs, fmt.Sprintf("Addresses.%d", i), v.Validate())
	}
	return errs
}

func AsVaultAccounts(a *Accounts) VaultAccounts {
	addrs := make([]vault.Address, len(a.Addresses))
	for k, v := range a.Addresses {
		addrs[k] = vault.Address(v)
	}
	return VaultAccounts{Addresses: addrs}
}

func AsAccounts(a VaultAccounts) *Accounts {
	addrs := make([][]byte, len(a.Addresses))
	for k, v := range a.Addresses {
		addrs[k] = []byte(v)
	}
	return &Accounts{
		Metadata:  &vault.Metadata{Schema: 1},
		Addresses: addrs,
	}
}

var _ orm.CloneableData = (*Accounts)(nil)

func (m *Accounts) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.Append(errs, AsVaultAccounts(m).Validate())
	return errs
}

func (m *Accounts) Copy() orm.CloneableData {
	addrs := make([][]byte, len(m.Addresses))
	for k, v := range m.Addresses {
		addrs[k] = append([]byte{}, v...)
	}
	return &Accounts{
		Metadata:  m.Metadata.Copy(),
		Addresses: addrs,
	}
}

type AccountBucket struct {
	migration.Bucket
}

func NewAccountBucket() *AccountBucket {
	return &AccountBucket{
		Bucket: migration.NewBucket("validators", bucketName,
			orm.NewSimpleObj(nil, &Accounts{})),
	}
}

func (b *AccountBucket) GetAccounts(kv vault.ReadOnlyKVStore) (*Accounts, error) {
	res, err := b.Get(kv, []byte(accountListKey))
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, errors.Wrap(errors.ErrNotFound, "account")
	}
	acc, ok := res.Value().(*Accounts)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", res.Value())
	}
	return acc, nil
}

func AccountsWith(acct VaultAccounts) orm.Object {
	acc := AsAccounts(acct)
	return orm.NewSimpleObj([]byte(accountListKey), acc)
}
