package timelock

import (
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/gconf"
)

func (p HolderPolicy) Validate() error {
	switch p {
	case HolderRecipient, HolderSender:
		return nil
	default:
		return errors.Wrapf(errors.ErrState, "invalid holder policy %d", p)
	}
}

func (p CancelErrorPolicy) Validate() error {
	switch p {
	case CancelErrorShared, CancelErrorDistinct:
		return nil
	default:
		return errors.Wrapf(errors.ErrState, "invalid cancel error policy %d", p)
	}
}

func (c *Configuration) Validate() error {
	// owner field is optional... possible to make it immutable
	if len(c.Owner) != 0 {
		if err := c.Owner.Validate(); err != nil {
			return errors.Wrap(err, "owner address")
		}
	}
	if err := c.Holder.Validate(); err != nil {
		return errors.Wrap(err, "holder")
	}
	if err := c.CancelError.Validate(); err != nil {
		return errors.Wrap(err, "cancel error")
	}
	return nil
}

func mustLoadConf(db gconf.Store) Configuration {
	var conf Configuration
	if err := gconf.Load(db, "timelock", &conf); err != nil {
		err = errors.Wrap(err, "load configuration")
		panic(err)
	}
	return conf
}
