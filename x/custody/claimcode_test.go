package custody

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/payinbox/payinbox/errors"
)

func TestHashClaimCode(t *testing.T) {
	// Keccak256 test vector for an empty input.
	want := "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"
	if got := hex.EncodeToString(HashClaimCode(nil)); got != want {
		t.Fatalf("unexpected digest: %s", got)
	}

	if bytes.Equal(HashClaimCode([]byte("a")), HashClaimCode([]byte("b"))) {
		t.Fatal("different codes must not share a digest")
	}
}

func TestVerifyClaimCode(t *testing.T) {
	code := []byte("sunny-afternoon-4711")
	commitment := HashClaimCode(code)

	cases := map[string]struct {
		code    []byte
		wantErr *errors.Error
	}{
		"correct code": {
			code: code,
		},
		"wrong code": {
			code:    []byte("sunny-afternoon-4712"),
			wantErr: ErrInvalidClaimCode,
		},
		"wrong code differing in the last byte only": {
			code:    append(append([]byte(nil), code[:len(code)-1]...), code[len(code)-1]^1),
			wantErr: ErrInvalidClaimCode,
		},
		"empty code": {
			code:    nil,
			wantErr: ErrInvalidClaimCode,
		},
		"maximum length is accepted": {
			code:    bytes.Repeat([]byte{7}, MaxClaimCodeLen),
			wantErr: ErrInvalidClaimCode,
		},
		"oversized code is rejected before hashing": {
			code:    bytes.Repeat([]byte{7}, MaxClaimCodeLen+1),
			wantErr: ErrCodeTooLong,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := verifyClaimCode(tc.code, commitment); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestVerifyClaimCodeMaxLength(t *testing.T) {
	code := bytes.Repeat([]byte{42}, MaxClaimCodeLen)
	if err := verifyClaimCode(code, HashClaimCode(code)); err != nil {
		t.Fatalf("a maximum length code must verify: %+v", err)
	}
}
