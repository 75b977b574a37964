package postgres

import (
	"crypto/rand"
	"math/big"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs. ULIDs sort lexicographically in
// creation order, which the primary-account rule relies on.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

// AccountNumberLength is the number of digits in an account number.
const AccountNumberLength = 12

// RandomAccountNumberGenerator generates fixed-length numeric account
// numbers from crypto/rand. Numbers carry no issuance-order information.
type RandomAccountNumberGenerator struct{}

// NewRandomAccountNumberGenerator creates a new RandomAccountNumberGenerator.
func NewRandomAccountNumberGenerator() *RandomAccountNumberGenerator {
	return &RandomAccountNumberGenerator{}
}

// Generate generates a random account number. Uniqueness is enforced by the
// database; callers regenerate on a duplicate.
func (g *RandomAccountNumberGenerator) Generate() string {
	digits := make([]byte, AccountNumberLength)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand failing means the platform is broken.
			panic(err)
		}
		digits[i] = byte('0' + n.Int64())
	}

	return string(digits)
}
