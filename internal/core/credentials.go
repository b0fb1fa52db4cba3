package core

import (
	"math/rand/v2"
)

const (
	accountIDDigits = 5
	passcodeDigits  = 4
)

func newAccountID() string {
	return randomDigits(accountIDDigits)
}

func newPasscode() string {
	return randomDigits(passcodeDigits)
}

// randomDigits returns n random decimal digits. The first digit is never
// zero, so every credential of a given kind has the same printed width.
func randomDigits(n int) string {
	b := make([]byte, n)
	b[0] = byte('1' + rand.IntN(9))
	for i := 1; i < n; i++ {
		b[i] = byte('0' + rand.IntN(10))
	}
	return string(b)
}
