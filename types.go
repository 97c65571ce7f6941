package vault

import (
	"fmt"
	"strings"

	"github.com/iov-one/vault/codec"
	"github.com/iov-one/vault/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

const validatorUpdatesKey = "_1:update_validators"

// CommitInfo is a type alias for now, which allows us to override this type
// with a custom one at any moment.
type CommitInfo = abci.LastCommitInfo

// PubKey represents a validator public key.
type PubKey struct {
	Type string
	Data []byte
}

func (m PubKey) String() string {
	return fmt.Sprintf("%s/%X", m.Type, m.Data)
}

func (m PubKey) AsABCI() abci.PubKey {
	return abci.PubKey{
		Data: m.Data,
		Type: m.Type,
	}
}

func PubkeyFromABCI(u abci.PubKey) PubKey {
	return PubKey{
		Type: u.Type,
		Data: u.Data,
	}
}

// ValidatorUpdate describes a change to a single validator power.
type ValidatorUpdate struct {
	PubKey PubKey
	Power  int64
}

func (m ValidatorUpdate) Validate() error {
	if len(m.PubKey.Data) != 32 || strings.ToLower(m.PubKey.Type) != "ed25519" {
		return errors.Wrapf(errors.ErrType, "invalid public key: %s", m.PubKey.Type)
	}
	if m.Power < 0 {
		return errors.Wrapf(errors.ErrMsg, "power: %d", m.Power)
	}
	return nil
}

func (m ValidatorUpdate) AsABCI() abci.ValidatorUpdate {
	return abci.ValidatorUpdate{
		PubKey: m.PubKey.AsABCI(),
		Power:  m.Power,
	}
}

func ValidatorUpdateFromABCI(u abci.ValidatorUpdate) ValidatorUpdate {
	return ValidatorUpdate{
		Power:  u.Power,
		PubKey: PubkeyFromABCI(u.PubKey),
	}
}

// ValidatorUpdates is a list of validator power changes, stored in the
// database so that the current validator set can be tracked.
type ValidatorUpdates struct {
	ValidatorUpdates []ValidatorUpdate
}

var _ Persistent = (*ValidatorUpdates)(nil)

func (m *ValidatorUpdates) Marshal() ([]byte, error) {
	return codec.Marshal(m)
}

func (m *ValidatorUpdates) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, m)
}

func (m ValidatorUpdates) Validate() error {
	var err error
	for _, v := range m.ValidatorUpdates {
		err = errors.Append(err, v.Validate())
	}
	return err
}

// ValidatorUpdatesToABCI converts validator updates to abci representation.
func ValidatorUpdatesToABCI(updates ValidatorUpdates) []abci.ValidatorUpdate {
	res := make([]abci.ValidatorUpdate, len(updates.ValidatorUpdates))
	for k, v := range updates.ValidatorUpdates {
		res[k] = v.AsABCI()
	}
	return res
}

// Deduplicate makes sure we only use the last validator update to any given validator.
// For bookkeeping we have an option to drop validators with zero power, because those
// are being remove by tendermint once propagated.
func (m ValidatorUpdates) Deduplicate(dropZeroPower bool) []ValidatorUpdate {
	duplicates := make(map[string]int, 0)
	cleanValidatorSlice := make([]ValidatorUpdate, 0, len(m.ValidatorUpdates))

	for _, v := range m.ValidatorUpdates {
		if dropZeroPower && v.Power == 0 {
			continue
		}
		if key, ok := duplicates[v.PubKey.String()]; ok {
			cleanValidatorSlice[key] = v
			continue
		}
		cleanValidatorSlice = append(cleanValidatorSlice, v)
		duplicates[v.PubKey.String()] = len(cleanValidatorSlice) - 1
	}

	return cleanValidatorSlice
}

// Store stores ValidatorUpdates to the KVStore while cleaning up those with 0
// power.
func (m ValidatorUpdates) Store(store KVStore) error {
	m.ValidatorUpdates = m.Deduplicate(true)

	marshalledUpdates, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "validator updates marshal")
	}
	err = store.Set([]byte(validatorUpdatesKey), marshalledUpdates)
	return errors.Wrap(err, "kvstore save")
}

// GetValidatorUpdates loads the validator set as stored by the last Store
// call.
func GetValidatorUpdates(store KVStore) (ValidatorUpdates, error) {
	vu := ValidatorUpdates{}
	bytes, err := store.Get([]byte(validatorUpdatesKey))
	if err != nil {
		return vu, errors.Wrap(err, "kvstore get")
	}
	if bytes == nil {
		return vu, nil
	}

	err = vu.Unmarshal(bytes)
	return vu, errors.Wrap(err, "validator updates unmarshal")
}

// ValidatorUpdatesFromABCI converts the abci validator update list into the
// internal representation.
func ValidatorUpdatesFromABCI(u []abci.ValidatorUpdate) ValidatorUpdates {
	vu := ValidatorUpdates{
		ValidatorUpdates: make([]ValidatorUpdate, len(u)),
	}
	for k, v := range u {
		vu.ValidatorUpdates[k] = ValidatorUpdateFromABCI(v)
	}
	return vu
}
