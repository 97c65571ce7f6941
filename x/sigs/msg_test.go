package sigs

import (
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/vaulttest"
)

func TestBumpSequenceValidate(t *testing.T) {
	cases := map[string]struct {
		Msg     vault.Msg
		WantErr *errors.Error
	}{
		"valid message": {
			Msg: &BumpSequenceMsg{
				Metadata:  &vault.Metadata{Schema: 1},
				Increment: 1,
				User:      vaulttest.NewCondition().Address(),
			},
			WantErr: nil,
		},
		"missing user": {
			Msg: &BumpSequenceMsg{
				Metadata:  &vault.Metadata{Schema: 1},
				Increment: 1,
			},
			WantErr: errors.ErrEmpty,
		},
		"missing metadata": {
			Msg: &BumpSequenceMsg{
				Metadata:  nil,
				Increment: 1,
				User:      vaulttest.NewCondition().Address(),
			},
			WantErr: errors.ErrMetadata,
		},
		"increment too small": {
			Msg: &BumpSequenceMsg{
				Metadata:  &vault.Metadata{Schema: 1},
				Increment: 0,
				User:      vaulttest.NewCondition().Address(),
			},
			WantErr: errors.ErrMsg,
		},
		"increment too big": {
			Msg: &BumpSequenceMsg{
				Metadata:  &vault.Metadata{Schema: 1},
				Increment: 1001,
				User:      vaulttest.NewCondition().Address(),
			},
			WantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.Msg.Validate()
			if !tc.WantErr.Is(err) {
				t.Fatalf("unexpected validation error: %s", err)
			}
		})
	}
}
