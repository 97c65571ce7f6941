package validators

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/migration"
	abci "github.com/tendermint/tendermint/abci/types"
)

func init() {
	migration.MustRegister(1, &ApplyDiffMsg{}, migration.NoModification)
}

var _ vault.Msg = (*ApplyDiffMsg)(nil)

// Path returns the routing path for this message
func (*ApplyDiffMsg) Path() string {
	return "validators/apply_diff"
}

func (m *ApplyDiffMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if len(m.ValidatorUpdates) == 0 {
		return errors.Wrap(ErrEmptyDiff, "validator set")
	}
	for _, v := range m.ValidatorUpdates {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// AsABCI converts the diff to the tendermint representation.
func (m *ApplyDiffMsg) AsABCI() []abci.ValidatorUpdate {
	validators := make([]abci.ValidatorUpdate, len(m.ValidatorUpdates))
	for k, v := range m.ValidatorUpdates {
		validators[k] = v.AsABCI()
	}
	return validators
}
