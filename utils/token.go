package utils

import (
	"math/rand"
	"strings"

	"github.com/google/uuid"
)

// NewInviteToken returns an opaque token for family invitations and
// email verification links.
func NewInviteToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

const resetCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewResetCode returns a short code suitable for typing from an email.
func NewResetCode(length int) string {
	code := make([]byte, length)
	for i := range code {
		code[i] = resetCodeCharset[rand.Intn(len(resetCodeCharset))]
	}
	return string(code)
}
