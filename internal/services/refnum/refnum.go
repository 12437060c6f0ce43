// Package refnum generates human-readable application reference numbers of
// the form DASHEN-YYYYMM-NNNN.
package refnum

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

const prefix = "DASHEN"

// Pattern matches a well-formed application reference number.
var Pattern = regexp.MustCompile(`^DASHEN-\d{6}-\d{4}$`)

// Generate returns a reference number for now. The 4-digit suffix is
// crypto-random, so callers must pair it with a unique index and retry on
// collision; uniqueness is a database property, not a generator property.
func Generate(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("generate reference suffix: %w", err)
	}
	return fmt.Sprintf("%s-%s-%04d", prefix, now.Format("200601"), n.Int64()), nil
}

// Valid reports whether ref is a well-formed reference number.
func Valid(ref string) bool {
	return Pattern.MatchString(ref)
}
