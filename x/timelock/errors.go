package timelock

import (
	"github.com/iov-one/vault/errors"
)

// x/timelock reserves 150 ~ 159.
var (
	// ErrNotRecipient is returned when release is requested by an
	// address other than the recorded recipient.
	ErrNotRecipient = errors.Register(150, "not the recipient")

	// ErrNotSender is returned when cancel is requested by an address
	// other than the recorded sender.
	ErrNotSender = errors.Register(151, "not the sender")

	// ErrTimeLocked is returned when funds are requested before the
	// unlock time was reached.
	ErrTimeLocked = errors.Register(152, "funds are time locked")

	// ErrLockElapsed is returned when a cancel comes in after the
	// unlock time and the distinct cancel error policy is configured.
	ErrLockElapsed = errors.Register(153, "lock already elapsed")
)
