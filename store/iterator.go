package store

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/iov-one/vault/errors"
)

///////////////////////////////////////////////////////
// From BTree items to Iterator

// btreeIter feeds the items of a btree range scan through a channel, so
// they can be consumed lazily by the pull-based Iterator interface.
type btreeIter struct {
	read       <-chan btree.Item
	stop       chan<- struct{}
	once       sync.Once
	descending bool

	item    btree.Item
	hasMore bool
}

func ascendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	stop := make(chan struct{})
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Ascend(insert)
		} else if start == nil { // end != nil
			bt.AscendLessThan(bkey{end}, insert)
		} else if end == nil { // start != nil
			bt.AscendGreaterOrEqual(bkey{start}, insert)
		} else { // both != nil
			bt.AscendRange(bkey{start}, bkey{end}, insert)
		}
		close(read)
	}()

	iter.advance()
	return iter
}

func descendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	stop := make(chan struct{})
	iter := &btreeIter{
		read:       read,
		stop:       stop,
		descending: true,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Descend(insert)
		} else if start == nil { // end != nil
			bt.DescendLessOrEqual(bkeyLess{end}, insert)
		} else if end == nil { // start != nil
			bt.DescendGreaterThan(bkeyLess{start}, insert)
		} else { // both != nil
			bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
		}
		close(read)
	}()

	iter.advance()
	return iter
}

func (b *btreeIter) wrap(parent Iterator) *itemIter {
	return &itemIter{
		wrap:   b,
		parent: parent,
	}
}

func (b *btreeIter) advance() {
	b.item, b.hasMore = <-b.read
}

func (b *btreeIter) close() {
	b.once.Do(func() {
		close(b.stop)
	})
	// drain any leftover item so the producing goroutine can finish
	for b.hasMore {
		b.advance()
	}
}

// get requires this is valid, gets what we are pointing at
func (b *btreeIter) get() keyer {
	return b.item.(keyer)
}

func (b *btreeIter) valid() bool {
	return b.hasMore
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// itemIter combines the uncommitted state from the btree overlay with the
// backing store iterator, respecting overwrites and deletes.
type itemIter struct {
	wrap *btreeIter
	// if we are iterating in a cache-wrap (and who isn't),
	// we need to combine this iterator with the parent
	parent Iterator

	// cached head of the parent iterator
	parentKey   []byte
	parentValue []byte
	parentOK    bool
	primed      bool

	released bool
}

var _ Iterator = (*itemIter)(nil)

// Next returns the next key-value pair in iteration order, or a wrapped
// ErrIteratorDone when all data was consumed.
func (i *itemIter) Next() (key, value []byte, err error) {
	if i.released {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "iterator released")
	}
	if !i.primed {
		if err := i.pullParent(); err != nil {
			return nil, nil, err
		}
		i.primed = true
	}

	for {
		switch i.firstKey() {
		case none:
			i.Release()
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		case parent:
			key, value = i.parentKey, i.parentValue
			if err := i.pullParent(); err != nil {
				return nil, nil, err
			}
			return key, value, nil
		case us, both:
			item := i.wrap.get()
			skipParent := i.firstKey() == both
			i.wrap.advance()
			if skipParent {
				if err := i.pullParent(); err != nil {
					return nil, nil, err
				}
			}
			if set, ok := item.(setItem); ok {
				return set.Key(), set.value, nil
			}
			// deleted item, move on to the next candidate
		}
	}
}

// Release releases the Iterator, allowing it to do any needed cleanup.
func (i *itemIter) Release() {
	if i.released {
		return
	}
	i.released = true
	if i.parent != nil {
		i.parent.Release()
	}
	i.wrap.close()
}

// pullParent caches the next key-value pair of the parent iterator
func (i *itemIter) pullParent() error {
	if i.parent == nil {
		i.parentOK = false
		return nil
	}
	key, value, err := i.parent.Next()
	switch {
	case err == nil:
		i.parentKey, i.parentValue = key, value
		i.parentOK = true
	case errors.ErrIteratorDone.Is(err):
		i.parentKey, i.parentValue = nil, nil
		i.parentOK = false
	default:
		return err
	}
	return nil
}

// firstKey selects the iterator that holds the lowest (or highest, when
// descending) key, if any
func (i *itemIter) firstKey() source {
	if !i.parentOK {
		if !i.wrap.valid() {
			return none
		}
		return us
	} else if !i.wrap.valid() {
		return parent
	}

	// both are valid... compare keys....
	cmp := bytes.Compare(i.parentKey, i.wrap.get().Key())
	if i.wrap.descending {
		cmp = -cmp
	}
	if cmp < 0 {
		return parent
	} else if cmp > 0 {
		return us
	}
	return both
}
