package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// otpDigits is the length of a password-reset code. Six digits matches what
// the front-end OTP input expects.
const otpDigits = 6

// NewOTPCode returns a zero-padded numeric one-time code generated from a
// cryptographically secure source.
func NewOTPCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}
