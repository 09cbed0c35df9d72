package bech32

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func TestBech32EncodeDecode(t *testing.T) {
	payload, err := hex.DecodeString("746573742d7061796c6f6164")
	if err != nil {
		t.Fatal(err)
	}

	raw, err := Encode("pay", payload)
	if err != nil {
		t.Fatalf("cannot encode: %s", err)
	}
	if !strings.HasPrefix(string(raw), "pay1") {
		t.Fatalf("missing human readable prefix: %q", raw)
	}

	hrp, got, err := Decode(string(raw))
	if err != nil {
		t.Fatalf("cannot decode: %s", err)
	}
	if hrp != "pay" {
		t.Fatalf("invalid human readable part: %q", hrp)
	}
	if !bytes.Equal(payload, got) {
		t.Logf("want %d", payload)
		t.Logf("got  %d", got)
		t.Fatal("invalid decode")
	}
}

func TestBech32DecodeCorrupted(t *testing.T) {
	payload := []byte("some-payload")
	raw, err := Encode("pay", payload)
	if err != nil {
		t.Fatal(err)
	}

	// Flip a character in the data part to break the checksum.
	broken := []byte(string(raw))
	last := len(broken) - 1
	if broken[last] == 'x' {
		broken[last] = 'z'
	} else {
		broken[last] = 'x'
	}

	if _, _, err := Decode(string(broken)); err == nil {
		t.Fatal("checksum failure expected")
	}
}
