package address

import (
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ErrInvalidAddress is returned when a string is not a 0x-prefixed 20-byte hex address
var ErrInvalidAddress = errors.New("invalid address")

// Zero is the all-zero address, never a valid payout recipient
const Zero = "0x0000000000000000000000000000000000000000"

// Normalize validates an address and returns its lower-case storage form
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) != 42 || !(strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		return "", ErrInvalidAddress
	}
	body := strings.ToLower(s[2:])
	if _, err := hex.DecodeString(body); err != nil {
		return "", ErrInvalidAddress
	}
	return "0x" + body, nil
}

// IsZero reports whether addr is empty or the zero address
func IsZero(addr string) bool {
	return addr == "" || strings.EqualFold(addr, Zero)
}

// Checksum returns the EIP-55 mixed-case form of a valid address
func Checksum(s string) (string, error) {
	addr, err := Normalize(s)
	if err != nil {
		return "", err
	}
	body := addr[2:]

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(body))
	digest := hex.EncodeToString(h.Sum(nil))

	out := make([]byte, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		// letters are upper-cased when the matching hash nibble is >= 8
		if c >= 'a' && c <= 'f' && digest[i] >= '8' {
			c -= 'a' - 'A'
		}
		out[i] = c
	}
	return "0x" + string(out), nil
}
