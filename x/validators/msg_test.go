package validators

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest"
)

func TestValidateApplyDiffMsg(t *testing.T) {
	pubkey := vault.PubKey{
		Data: vaulttest.NewKey().PublicKey().GetEd25519(),
		Type: "ed25519",
	}

	cases := map[string]struct {
		Msg     vault.Msg
		WantErr *errors.Error
	}{
		"valid message": {
			Msg: &ApplyDiffMsg{
				Metadata: &vault.Metadata{Schema: 1},
				ValidatorUpdates: []vault.ValidatorUpdate{
					{Power: 4, PubKey: pubkey},
					{Power: 3, PubKey: pubkey},
				},
			},
			WantErr: nil,
		},
		"missing metadata": {
			Msg: &ApplyDiffMsg{
				ValidatorUpdates: []vault.ValidatorUpdate{
					{Power: 4, PubKey: pubkey},
					{Power: 3, PubKey: pubkey},
				},
			},
			WantErr: errors.ErrMetadata,
		},
		"empty diff": {
			Msg: &ApplyDiffMsg{
				Metadata: &vault.Metadata{Schema: 1},
			},
			WantErr: ErrEmptyDiff,
		},
		"negative power": {
			Msg: &ApplyDiffMsg{
				Metadata: &vault.Metadata{Schema: 1},
				ValidatorUpdates: []vault.ValidatorUpdate{
					{Power: -4, PubKey: pubkey},
				},
			},
			WantErr: errors.ErrMsg,
		},
		"wrong key type": {
			Msg: &ApplyDiffMsg{
				Metadata: &vault.Metadata{Schema: 1},
				ValidatorUpdates: []vault.ValidatorUpdate{
					{Power: 4, PubKey: vault.PubKey{Type: "secp256k1", Data: pubkey.Data}},
				},
			},
			WantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.Msg.Validate(); !tc.WantErr.Is(err) {
				t.Fatalf("unexpected validation error: %s", err)
			}
		})
	}
}
