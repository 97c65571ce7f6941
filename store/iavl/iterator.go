package iavl

import (
	"sync"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
)

// lazyIterator pulls data out of the iavl tree callback-based range scan
// on demand. The producing goroutine blocks until the consumer asks for
// the next item or releases the iterator.
type lazyIterator struct {
	read chan store.Model
	stop chan struct{}
	once sync.Once
}

var _ store.Iterator = (*lazyIterator)(nil)

func newLazyIterator() *lazyIterator {
	return &lazyIterator{
		read: make(chan store.Model),
		stop: make(chan struct{}),
	}
}

// add feeds one key-value pair to the consumer. It is passed as the
// callback to MutableTree.IterateRange and returns true to abort the scan.
func (i *lazyIterator) add(key, value []byte) bool {
	select {
	case i.read <- store.Model{Key: key, Value: value}:
		return false
	case <-i.stop:
		return true
	}
}

// finish marks the end of data. Must be called by the producer when the
// range scan is done.
func (i *lazyIterator) finish() {
	close(i.read)
}

func (i *lazyIterator) Next() ([]byte, []byte, error) {
	data, hasMore := <-i.read
	if !hasMore {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "iavl iterator")
	}
	return data.Key, data.Value, nil
}

func (i *lazyIterator) Release() {
	i.once.Do(func() {
		close(i.stop)
	})
}
