package bst

import (
	"reflect"

	"github.com/pkg/errors"
)

// ErrInvalidArgument is returned for keys which are absent values, e.g. nil pointers,
// or which are rejected by a map's KeyValidator.
var ErrInvalidArgument = errors.New("invalid key")

// ErrDuplicateKey is returned when adding a key which is already present in a map.
// Maps do not overwrite values; use Remove followed by Add instead.
var ErrDuplicateKey = errors.New("duplicate key")

// KeyValidator checks keys for domain-specific validity. It returns false for keys
// which should be rejected with ErrInvalidArgument.
type KeyValidator[K any] func(K) bool

// isAbsent is true for nil values of nillable kinds.
func isAbsent(k any) bool {
	if k == nil {
		return true
	}
	switch v := reflect.ValueOf(k); v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
