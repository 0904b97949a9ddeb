package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// IP hashes an IP address with a salt for abuse tracking and log
// correlation. Raw IPs are never stored or logged.
func IP(ip, salt string) string {
	return SHA256Hex(salt + ip)
}

// ShortIP returns a 12-character prefix of the salted IP hash, enough for
// correlating log lines without keeping the full digest around.
func ShortIP(ip, salt string) string {
	return IP(ip, salt)[:12]
}
