package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// GenerateID returns a new unique identifier string
func GenerateID() string {
	return uuid.New().String()
}

// ValidID reports whether id parses as a UUID
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// GenerateBarcode returns an inventory barcode of the form DIA-XXXXXXXX
func GenerateBarcode() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms; fall back to uuid bits
		u := uuid.New()
		copy(buf, u[:4])
	}
	return "DIA-" + strings.ToUpper(hex.EncodeToString(buf))
}
