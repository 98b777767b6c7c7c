// Copyright (c) 2026 Kritika. All rights reserved.

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kritika-app/kritika/internal/platform/sec"
)

/*
TestConfirmationSigner_RoundTrip checks code generation and verification
against the same account state.
*/
func TestConfirmationSigner_RoundTrip(t *testing.T) {
	signer := sec.NewConfirmationSigner("test-secret")
	state := "id-1|alice|alice@example.com|user|false|1700000000"

	code := signer.Generate(state)
	require.Len(t, code, 20)

	assert.True(t, signer.Verify(state, code))
	// Codes are accepted case-insensitively (users retype them from email).
	assert.True(t, signer.Verify(state, strings.ToUpper(code)))
	assert.False(t, signer.Verify(state, "definitely-wrong-code"))
}

/*
TestConfirmationSigner_StateBound verifies that any change to the account
state (including the update timestamp) invalidates previously issued codes.
*/
func TestConfirmationSigner_StateBound(t *testing.T) {
	signer := sec.NewConfirmationSigner("test-secret")

	original := "id-1|alice|alice@example.com|user|false|1700000000"
	mutated := "id-1|alice|alice@example.com|moderator|false|1700000999"

	code := signer.Generate(original)
	assert.True(t, signer.Verify(original, code))
	assert.False(t, signer.Verify(mutated, code))
}

/*
TestConfirmationSigner_SecretBound verifies that signers with different
secrets never accept each other's codes.
*/
func TestConfirmationSigner_SecretBound(t *testing.T) {
	state := "id-1|alice|alice@example.com|user|false|1700000000"

	code := sec.NewConfirmationSigner("secret-a").Generate(state)
	assert.False(t, sec.NewConfirmationSigner("secret-b").Verify(state, code))
}
