package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewFirebaseVerifierRequiresProjectID(t *testing.T) {
	_, err := NewFirebaseVerifier(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingProjectID)
}
