package orm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := []struct {
		bucket     string
		name       string
		increments int64
	}{
		0: {"aaa", "id", 22},
		1: {"aaa", "other", 11},
		2: {"aaa", "id", 18}, // Continues case 0 state.
		3: {"bbb", "id", 77},
		4: {"aaa", "other", 248}, // Continues case 1 state.
	}

	// Running total per sequence key, to verify state is shared between
	// instances with the same bucket and name.
	totals := make(map[string]int64)

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			_, orig, err := s.Latest(db)
			assert.Nil(t, err)

			var val int64
			for i := int64(0); i < tc.increments; i++ {
				val, err = s.NextInt(db)
				assert.Nil(t, err)
			}

			totals[tc.bucket+"/"+tc.name] += tc.increments
			assert.Equal(t, totals[tc.bucket+"/"+tc.name], val)

			// Make sure the final value is bigger than the original
			// value if we use the raw bytes to index stuff.
			_, last, err := s.Latest(db)
			assert.Nil(t, err)
			assert.Equal(t, 1, bytes.Compare(last, orig))

			// Raw bytes and integer state must be in sync.
			assert.Equal(t, val, DecodeSequence(last))
		})
	}
}
