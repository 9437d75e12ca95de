// Package codec wraps JSON encoding for the stored workout slots.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmpty is returned for a missing or blank blob.
var ErrEmpty = errors.New("empty payload")

// Decode parses raw into a fresh T. Callers treat any error as "slot absent".
func Decode[T any](raw []byte) (T, error) {
	var out T
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, ErrEmpty
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode: %w", err)
	}
	return out, nil
}

// DecodeInto unmarshals raw over an existing value, so fields absent from raw
// keep whatever dst already held.
func DecodeInto(raw []byte, dst any) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ErrEmpty
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func Encode(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return raw, nil
}
