// Copyright (c) 2026 Kritika. All rights reserved.

package sec

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base32"
	"strings"
)

// # Confirmation Codes

// confirmationCodeLength is the number of base32 characters in an emailed
// confirmation code. 20 characters of base32 encode 100 bits of the HMAC,
// which is comfortably beyond brute-force range while staying typeable.
const confirmationCodeLength = 20

// ConfirmationSigner derives single-use signup confirmation codes.
//
// # Statelessness
//
// A code is an HMAC-SHA256 over the account's current persisted state, so
// nothing has to be stored server-side: verification simply recomputes the
// expected value. Because the state string includes the account's last
// update timestamp, ANY mutation of the account invalidates every code
// issued before it.
type ConfirmationSigner struct {
	secret []byte
}

// NewConfirmationSigner creates a signer keyed with the given secret.
func NewConfirmationSigner(secret string) *ConfirmationSigner {
	return &ConfirmationSigner{secret: []byte(secret)}
}

// Generate derives the confirmation code for the given account state string.
func (signer *ConfirmationSigner) Generate(state string) string {
	mac := hmac.New(sha256.New, signer.secret)
	mac.Write([]byte(state))
	digest := mac.Sum(nil)

	encoded := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(digest)
	return strings.ToLower(encoded[:confirmationCodeLength])
}

// Verify reports whether the supplied code matches the expected code for the
// given account state. Comparison is constant-time.
func (signer *ConfirmationSigner) Verify(state, code string) bool {
	expected := signer.Generate(state)
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(code)))
}
