//go:build js && wasm

package webapp

import (
	"context"
	"fmt"
	"syscall/js"

	inErrors "github.com/Alturino/tgcart/internal/errors"
)

// LocalStorage is the browser profile's key-value store.
type LocalStorage struct {
	storage js.Value
}

func NewLocalStorage() LocalStorage {
	return LocalStorage{storage: js.Global().Get("localStorage")}
}

func (l LocalStorage) Get(_ context.Context, key string) (value string, err error) {
	defer recoverJSError(&err)
	v := l.storage.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", inErrors.ErrNotFound
	}
	return v.String(), nil
}

func (l LocalStorage) Set(_ context.Context, key string, value string) (err error) {
	defer recoverJSError(&err)
	l.storage.Call("setItem", key, value)
	return nil
}

func (l LocalStorage) Delete(_ context.Context, key string) (err error) {
	defer recoverJSError(&err)
	l.storage.Call("removeItem", key)
	return nil
}

// recoverJSError turns a thrown js exception (quota exceeded, storage
// disabled) into an error.
func recoverJSError(err *error) {
	if r := recover(); r != nil {
		if jsErr, ok := r.(js.Error); ok {
			*err = fmt.Errorf("localStorage failed with error=%w", jsErr)
			return
		}
		panic(r)
	}
}
