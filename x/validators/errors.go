package validators

import (
	"github.com/iov-one/vault/errors"
)

// x/validators reserves 140 ~ 149.
var ErrEmptyDiff = errors.Register(140, "empty validator diff")
