package orm

import (
	"testing"

	"github.com/iov-one/vault/errors"
)

func TestValidateSequence(t *testing.T) {
	cases := map[string]struct {
		id      []byte
		wantErr *errors.Error
	}{
		"valid 8 byte sequence": {
			id:      EncodeSequence(4219),
			wantErr: nil,
		},
		"missing": {
			id:      nil,
			wantErr: errors.ErrEmpty,
		},
		"too short": {
			id:      []byte{1, 2, 3},
			wantErr: errors.ErrInput,
		},
		"too long": {
			id:      []byte{1, 2, 3, 4, 5, 6, 7, 8, 9},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := ValidateSequence(tc.id); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}
