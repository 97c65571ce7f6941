package vault

import (
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/vault/errors"
)

func unmarshalHex(src []byte, dst *[]byte) error {
	var s string
	if err := json.Unmarshal(src, &s); err != nil {
		return errors.Wrap(err, "parse string")
	}
	// and interpret that string as hex
	raw, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrap(err, "parse hex")
	}
	*dst = raw
	return nil
}

func marshalHex(bytes []byte) ([]byte, error) {
	s := strings.ToUpper(hex.EncodeToString(bytes))
	return json.Marshal(s)
}
