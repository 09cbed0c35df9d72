package custody

import (
	"crypto/subtle"

	"golang.org/x/crypto/sha3"

	"github.com/payinbox/payinbox/errors"
)

// MaxClaimCodeLen is the longest claim code the engine accepts, in
// bytes. The length is checked before any hashing takes place.
const MaxClaimCodeLen = 256

// HashClaimCode returns the Keccak256 commitment of a claim code.
func HashClaimCode(code []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(code)
	return h.Sum(nil)
}

// verifyClaimCode checks the presented code against the stored
// commitment. The digest comparison runs over the full width in
// constant time, there is no early exit on the first differing byte.
func verifyClaimCode(code, commitment []byte) error {
	if len(code) > MaxClaimCodeLen {
		return errors.Wrapf(ErrCodeTooLong, "%d bytes", len(code))
	}
	if subtle.ConstantTimeCompare(HashClaimCode(code), commitment) != 1 {
		return errors.Wrap(ErrInvalidClaimCode, "commitment mismatch")
	}
	return nil
}
