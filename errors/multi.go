package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil errors are ignored.
//
// Calling this function with no or only nil errors returns nil. A single
// non-nil error is returned as it is. Otherwise the returned error is a
// collection of all non-nil errors. The ABCI code of a collection is the code
// of the first contained error, consistent with a fail-fast evaluation.
func Append(errs ...error) error {
	var collection multiError
	for _, err := range errs {
		switch e := err.(type) {
		case nil:
			continue
		case multiError:
			collection = append(collection, e...)
		default:
			if isNilErr(err) {
				continue
			}
			collection = append(collection, err)
		}
	}

	switch len(collection) {
	case 0:
		return nil
	case 1:
		return collection[0]
	default:
		return collection
	}
}

// multiError represents a flat collection of errors. It is never empty and
// never contains a nil error or another multiError instance.
type multiError []error

var _ unpacker = (multiError)(nil)
var _ coder = (multiError)(nil)

func (errs multiError) Error() string {
	if len(errs) == 1 {
		return fmt.Sprintf("1 error occurred:\n\t* %s\n", errs[0])
	}
	points := make([]string, len(errs))
	for i, err := range errs {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s\n",
		len(errs), strings.Join(points, "\n\t"))
}

// Unpack returns all errors contained by this collection.
func (errs multiError) Unpack() []error {
	return errs
}

// ABCICode returns the code of the first contained error.
func (errs multiError) ABCICode() uint32 {
	return abciCode(errs[0])
}
