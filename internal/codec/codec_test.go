package codec

import (
	"errors"
	"math"
	"testing"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDecode(t *testing.T) {
	got, err := Decode[sample]([]byte(`{"name":"squat","count":3}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "squat" || got.Count != 3 {
		t.Fatalf("unexpected value: %+v", got)
	}
}

func TestDecodeEmptyAndMalformed(t *testing.T) {
	if _, err := Decode[sample](nil); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty for nil, got %v", err)
	}
	if _, err := Decode[sample]([]byte("   ")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty for blank, got %v", err)
	}
	if _, err := Decode[sample]([]byte(`{"name":`)); err == nil {
		t.Fatal("expected error for truncated json")
	}
}

func TestDecodeIntoKeepsMissingFields(t *testing.T) {
	dst := sample{Name: "default", Count: 7}
	if err := DecodeInto([]byte(`{"count":2}`), &dst); err != nil {
		t.Fatalf("decode into: %v", err)
	}
	if dst.Name != "default" || dst.Count != 2 {
		t.Fatalf("expected merge over defaults, got %+v", dst)
	}
}

func TestEncodeFailure(t *testing.T) {
	if _, err := Encode(math.NaN()); err == nil {
		t.Fatal("expected NaN to fail encoding")
	}
	raw, err := Encode(sample{Name: "a"})
	if err != nil || string(raw) != `{"name":"a","count":0}` {
		t.Fatalf("unexpected encode result %s, %v", raw, err)
	}
}
