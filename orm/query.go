package orm

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
)

// queryRangeLimit is the maximum number of results a single range query
// can return. Pagination must be used to retrieve more.
const queryRangeLimit = 50

// queryPrefix returns a list of all key-value pairs where the key begins
// with given prefix. Data is sorted by keys.
func queryPrefix(db vault.ReadOnlyKVStore, prefix []byte) ([]vault.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, errors.Wrap(err, "prefix iterator")
	}
	return consumeIterator(itr)
}

// consumeIterator reads all remaining data into a slice and releases the
// iterator. Use only when the result size is known to be small enough to
// keep in memory.
func consumeIterator(itr vault.Iterator) ([]vault.Model, error) {
	defer itr.Release()

	var res []vault.Model
	for {
		switch key, value, err := itr.Next(); {
		case err == nil:
			res = append(res, vault.Model{Key: key, Value: value})
		case errors.ErrIteratorDone.Is(err):
			return res, nil
		default:
			return nil, errors.Wrap(err, "iterator next")
		}
	}
}

// paginatedIterator returns at most remaining results from the wrapped
// iterator and signals the end of data afterwards.
type paginatedIterator struct {
	it        vault.Iterator
	remaining int
}

func (p *paginatedIterator) Next() ([]byte, []byte, error) {
	if p.remaining <= 0 {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "page end")
	}
	key, value, err := p.it.Next()
	if err != nil {
		return nil, nil, err
	}
	p.remaining--
	return key, value, nil
}

func (p *paginatedIterator) Release() {
	p.it.Release()
}

// prefixRange turns a prefix into a (start, end) range to iterate over.
//
// Special cases:
// - prefix is nil -> (nil, nil), the entire range of keys
// - prefix is all 0xff -> (prefix, nil), there is no end after all 0xff keys
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}

	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end
		}
		end = end[:i]
	}
	return prefix, nil
}
