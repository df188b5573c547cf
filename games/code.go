/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package games

import (
	"crypto/rand"
	"strings"
)

const (
	InviteAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	CodeLength     = 6

	// DefaultInviteCode is what the create view shows before the first regenerate.
	DefaultInviteCode = "MEME123"
)

// NewInviteCode draws CodeLength symbols uniformly from InviteAlphabet.
// Codes are not registered anywhere, so collisions go unnoticed.
func NewInviteCode() string {
	const max = byte(255 - (256 % len(InviteAlphabet)))

	out := make([]byte, 0, CodeLength)
	buf := make([]byte, CodeLength*2)

	for {
		if _, err := rand.Read(buf); err != nil {
			panic(err)
		}

		for _, b := range buf {
			if b > max {
				continue
			}

			out = append(out, InviteAlphabet[int(b)%len(InviteAlphabet)])
			if len(out) == CodeLength {
				return string(out)
			}
		}
	}
}

// ValidInviteSymbols reports whether every byte of code is in InviteAlphabet.
func ValidInviteSymbols(code string) bool {
	for i := 0; i < len(code); i++ {
		if strings.IndexByte(InviteAlphabet, code[i]) < 0 {
			return false
		}
	}

	return true
}
