package repository

import (
	"reflect"
	"strings"

	"github.com/degit-io/degit-riptide/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// ValidateNamespace rejects namespaces that cannot be used as a document ID.
func ValidateNamespace(ns types.Namespace) error {
	return validateID("namespace", string(ns))
}

// ValidateKey rejects keys that cannot be used as a document ID.
func ValidateKey(key string) error {
	return validateID("key", key)
}

func validateID(kind, id string) error {
	if id == "" || id == "." || id == ".." {
		return goerr.Wrap(ErrInvalidInput, kind+" is empty or reserved", goerr.V(kind, id))
	}
	if strings.Contains(id, "/") {
		return goerr.Wrap(ErrInvalidInput, kind+" contains invalid character '/'", goerr.V(kind, id))
	}
	if strings.HasPrefix(id, "__") && strings.HasSuffix(id, "__") {
		return goerr.Wrap(ErrInvalidInput, kind+" is reserved", goerr.V(kind, id))
	}
	return nil
}

// ResetValue sets the value v points to back to its zero value.
func ResetValue(v any) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
	}
}
