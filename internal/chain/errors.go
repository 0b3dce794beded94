package chain

import (
	"errors"
	"strings"
)

var (
	// ErrInsufficientTokenBalance means the server wallet holds fewer tokens
	// than the transfer amount. Permanent until the wallet is topped up.
	ErrInsufficientTokenBalance = errors.New("insufficient token balance in server wallet")

	// ErrInvalidDestination means the destination is not a valid address.
	ErrInvalidDestination = errors.New("invalid destination address")

	// ErrTransactionReverted means the transfer was mined but reverted on-chain.
	ErrTransactionReverted = errors.New("transaction reverted")
)

// IsPermanent reports whether the error can never succeed on retry. Everything
// else (RPC hiccups, nonce races, timeouts) is treated as transient.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrInsufficientTokenBalance) ||
		errors.Is(err, ErrInvalidDestination) ||
		errors.Is(err, ErrTransactionReverted)
}

// isNonceError matches the node errors raised when the in-process nonce has
// drifted from the chain's view of the account.
func isNonceError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "nonce too low") ||
		strings.Contains(msg, "nonce too high") ||
		strings.Contains(msg, "replacement transaction underpriced") ||
		strings.Contains(msg, "already known")
}
