package chain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPermanent(t *testing.T) {
	testCases := []struct {
		name      string
		err       error
		permanent bool
	}{
		{"insufficient balance", ErrInsufficientTokenBalance, true},
		{"invalid destination", ErrInvalidDestination, true},
		{"reverted", ErrTransactionReverted, true},
		{"wrapped permanent", fmt.Errorf("transfer: %w", ErrInsufficientTokenBalance), true},
		{"rpc error", errors.New("connection refused"), false},
		{"nonce error", errors.New("nonce too low"), false},
		{"nil", nil, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.permanent, IsPermanent(tc.err))
		})
	}
}

func TestIsNonceError(t *testing.T) {
	assert.True(t, isNonceError(errors.New("nonce too low")))
	assert.True(t, isNonceError(errors.New("Nonce too HIGH")))
	assert.True(t, isNonceError(errors.New("replacement transaction underpriced")))
	assert.True(t, isNonceError(errors.New("already known")))
	assert.False(t, isNonceError(errors.New("insufficient funds for gas")))
	assert.False(t, isNonceError(nil))
}
