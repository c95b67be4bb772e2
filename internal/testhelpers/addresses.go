package testhelpers

import "fmt"

// Addr returns a deterministic lower-case test address for n
func Addr(n int) string {
	return fmt.Sprintf("0x%040x", n)
}

// Well-known test identities
var (
	Admin        = Addr(0xad)
	FeeRecipient = Addr(0xfee)
	Alice        = Addr(0xa11ce)
	Bob          = Addr(0xb0b)
	Carol        = Addr(0xca201)
)
