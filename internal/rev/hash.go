package rev

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// DomainBackup is the domain prefix for backup content checksums.
// Version suffix enables future algorithm migration.
const DomainBackup = "recalc/backup/v1"

// ContentChecksum computes the checksum of artifact content.
// Format: SHA256(domain + 0x00 + NFC(content)), hex encoded.
//
// The null separator prevents domain/data boundary ambiguity. NFC
// normalization makes the checksum stable across Unicode encodings of
// the same text; non-UTF-8 bytes pass through unchanged.
func ContentChecksum(content []byte) string {
	h := sha256.New()
	h.Write([]byte(DomainBackup))
	h.Write([]byte{0x00})
	h.Write(norm.NFC.Bytes(content))
	return hex.EncodeToString(h.Sum(nil))
}
