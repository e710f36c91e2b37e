// Package cursor converts a storage resume position into an opaque token
// safe to hand to untrusted clients in a URL query parameter, and back.
//
// The token is unpadded base64url(json(key)), so it never needs escaping
// beyond what a query string already gets. The codec guarantees structural
// reversibility only - Decode(Encode(k)) == k for every key Encode
// produced - and never validates key contents; whether a decoded position
// still points at anything is the note store's concern.
package cursor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/sentinote/sentinote/pkg/storage"
)

// MalformedCursorError reports a cursor that cannot be reversed into a
// valid resume position: truncated, tampered with, or simply not one of
// ours. Callers treat it like any other invalid request argument.
type MalformedCursorError struct {
	cause error
}

func (e *MalformedCursorError) Error() string {
	return fmt.Sprintf("malformed cursor: %v", e.cause)
}

func (e *MalformedCursorError) Unwrap() error { return e.cause }

// Encode serializes a resume position into an opaque URL-safe token.
// A nil key means the traversal is exhausted and encodes to "".
func Encode(key storage.Key) string {
	if key == nil {
		return ""
	}
	data, err := json.Marshal(key)
	if err != nil {
		// A map[string]string cannot fail to marshal; keep the signature
		// clean rather than propagate an impossible error.
		panic(fmt.Sprintf("cursor: marshal resume key: %v", err))
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

// Decode reverses Encode. An empty token means "start from the beginning"
// and decodes to nil. Any token that cannot be reversed into a key fails
// with *MalformedCursorError.
func Decode(token string) (storage.Key, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, &MalformedCursorError{cause: err}
	}
	var key storage.Key
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, &MalformedCursorError{cause: err}
	}
	if len(key) == 0 {
		return nil, &MalformedCursorError{cause: fmt.Errorf("empty resume key")}
	}
	return key, nil
}
