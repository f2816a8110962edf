package auth

import (
	"crypto/rand"
	"math/big"
	"strings"
	"time"
)

// OTPGenerator produces numeric one-time passcodes for password resets
type OTPGenerator struct {
	length int
	ttl    time.Duration
	now    func() time.Time
	digit  func() int
}

// NewOTPGenerator creates a generator for codes of the given length valid for ttl
func NewOTPGenerator(length int, ttl time.Duration) *OTPGenerator {
	return &OTPGenerator{
		length: length,
		ttl:    ttl,
		now:    time.Now,
		digit:  randomDigit,
	}
}

// Generate returns a fresh code and the instant it stops being accepted
func (g *OTPGenerator) Generate() (string, time.Time) {
	var b strings.Builder
	b.Grow(g.length)
	for i := 0; i < g.length; i++ {
		b.WriteByte(byte('0' + g.digit()))
	}
	return b.String(), g.now().Add(g.ttl)
}

// TTL returns how long a generated code stays valid
func (g *OTPGenerator) TTL() time.Duration {
	return g.ttl
}

func randomDigit() int {
	n, err := rand.Int(rand.Reader, big.NewInt(10))
	if err != nil {
		panic("otp: crypto/rand unavailable: " + err.Error())
	}
	return int(n.Int64())
}
