// Package kvstore contains key-value stores. The FS store is the
// persistence gateway used to keep resolver health history and run
// statistics across runs; the Memory store serves the tests.
package kvstore

import "errors"

// ErrNoSuchKey indicates that there's no value for the given key.
var ErrNoSuchKey = errors.New("no such key")
