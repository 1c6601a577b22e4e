// Package pnr issues booking reference codes. References are derived from a
// UUID so collisions are structurally unlikely, and verified against the
// authoritative record set before issuance completes.
package pnr

import (
	"encoding/base32"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

const (
	prefix     = "PNR"
	codeLength = 8
	maxRetries = 5
)

// Pattern matches every reference this package can produce.
var Pattern = regexp.MustCompile(`^PNR[A-Z0-9]{8}$`)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Generate returns a fresh reference, "PNR" plus 8 base32 characters.
func Generate() string {
	id := uuid.New()
	code := encoding.EncodeToString(id[:])
	return prefix + code[:codeLength]
}

// GenerateUnique generates references until exists reports false, giving up
// after a small retry cap. exists should consult the authoritative store.
func GenerateUnique(exists func(string) bool) (string, error) {
	for i := 0; i < maxRetries; i++ {
		code := Generate()
		if exists == nil || !exists(code) {
			return code, nil
		}
	}
	return "", fmt.Errorf("pnr generation exhausted %d attempts", maxRetries)
}
