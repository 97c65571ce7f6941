package migration

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/codec"
	"github.com/iov-one/vault/errors"
)

const pathUpgradeSchemaMsg = "migration/upgrade_schema"

func init() {
	MustRegister(1, &UpgradeSchemaMsg{}, NoModification)
	codec.RegisterConcrete(&UpgradeSchemaMsg{}, "vault/migration/upgrade_schema_msg")
}

var _ vault.Msg = (*UpgradeSchemaMsg)(nil)
var _ Migratable = (*UpgradeSchemaMsg)(nil)

// UpgradeSchemaMsg requests a schema version upgrade of a single package.
// Schema versions are sequential, so ToVersion must be the successor of the
// currently active version.
type UpgradeSchemaMsg struct {
	Metadata *vault.Metadata `json:"metadata"`
	// Name of the package that schema version upgrade is made for.
	Pkg string `json:"pkg"`
	// ToVersion is the schema version that the package is upgraded to.
	ToVersion uint32 `json:"to_version"`
}

func (msg *UpgradeSchemaMsg) GetMetadata() *vault.Metadata {
	if msg == nil {
		return nil
	}
	return msg.Metadata
}

func (msg *UpgradeSchemaMsg) Marshal() ([]byte, error) {
	return codec.Marshal(msg)
}

func (msg *UpgradeSchemaMsg) Unmarshal(raw []byte) error {
	return codec.Unmarshal(raw, msg)
}

func (msg *UpgradeSchemaMsg) Validate() error {
	if err := msg.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if msg.Pkg == "" {
		return errors.Wrap(errors.ErrEmpty, "pkg is required")
	}
	if msg.ToVersion == 0 {
		return errors.Wrap(errors.ErrEmpty, "to version is required")
	}
	return nil
}

func (UpgradeSchemaMsg) Path() string {
	return pathUpgradeSchemaMsg
}
