package payinboxtest

import (
	"crypto/rand"

	"github.com/payinbox/payinbox"
)

// NewCondition returns a random condition in the signature extension
// format. Each call returns a different condition.
func NewCondition() payinbox.Condition {
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		panic(err)
	}
	return payinbox.NewCondition("sigs", "ed25519", data)
}
