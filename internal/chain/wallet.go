// Package chain implements the on-chain leg of reward distribution: ERC20
// transfers from the server wallet, signed locally and submitted through a
// JSON-RPC node. The wallet owns the account nonce; callers must serialize
// submissions through a single goroutine.
package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/Disidente87/vendor-wars-sub003/internal/adapter"
	"github.com/Disidente87/vendor-wars-sub003/internal/logger"
)

const erc20ABIJSON = `[
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"value","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"payable":false,"stateMutability":"nonpayable","type":"function"},
	{"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"payable":false,"stateMutability":"view","type":"function"}
]`

// TxState is the observed state of a submitted transfer.
type TxState string

const (
	// TxPending means the transaction is not yet mined deep enough.
	TxPending TxState = "pending"
	// TxConfirmed means the transaction is mined past the confirmation depth.
	TxConfirmed TxState = "confirmed"
	// TxReverted means the transaction was mined but failed.
	TxReverted TxState = "reverted"
)

// TransferStatus reports the on-chain state of a transfer.
type TransferStatus struct {
	State TxState
	Block uint64
}

// TokenTransferor defines the token transfer capability the distributor needs
//
//go:generate mockgen -source=wallet.go -destination=../mocks/wallet.go -package=mocks -mock_names=TokenTransferor=MockTokenTransferor
type TokenTransferor interface {
	// TransferTokens signs and broadcasts an ERC20 transfer, returning the tx hash
	TransferTokens(ctx context.Context, to string, amount *big.Int) (string, error)
	// TransferStatus reports whether a broadcast transfer is pending, confirmed or reverted
	TransferStatus(ctx context.Context, txHash string) (*TransferStatus, error)
	// Close releases the underlying client
	Close()
}

// Config holds wallet configuration.
type Config struct {
	PrivateKeyHex     string
	ChainID           int64
	TokenContract     string
	GasLimit          uint64
	ConfirmationDepth uint64
}

// Wallet is the server signing wallet. The in-process nonce is strictly
// monotonic under the mutex and resynced from the node after nonce errors.
type Wallet struct {
	client adapter.EthClient

	privateKey *ecdsa.PrivateKey
	from       common.Address
	chainID    *big.Int
	token      common.Address
	gasLimit   uint64
	confDepth  uint64
	erc20      abi.ABI

	mu        sync.Mutex
	nonce     uint64
	nonceInit bool
}

// NewWallet creates a wallet from a hex-encoded secp256k1 private key.
func NewWallet(client adapter.EthClient, cfg Config) (*Wallet, error) {
	if !common.IsHexAddress(cfg.TokenContract) {
		return nil, fmt.Errorf("invalid token contract address %q", cfg.TokenContract)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKeyHex, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse wallet private key: %w", err)
	}

	erc20, err := abi.JSON(strings.NewReader(erc20ABIJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ERC20 ABI: %w", err)
	}

	gasLimit := cfg.GasLimit
	if gasLimit == 0 {
		gasLimit = 100000
	}

	return &Wallet{
		client:     client,
		privateKey: privateKey,
		from:       crypto.PubkeyToAddress(privateKey.PublicKey),
		chainID:    big.NewInt(cfg.ChainID),
		token:      common.HexToAddress(cfg.TokenContract),
		gasLimit:   gasLimit,
		confDepth:  cfg.ConfirmationDepth,
		erc20:      erc20,
	}, nil
}

// Address returns the wallet's account address.
func (w *Wallet) Address() string {
	return w.from.Hex()
}

// TransferTokens signs and broadcasts transfer(to, amount) against the token
// contract. The wallet balance is checked first so an underfunded wallet
// fails permanently instead of burning gas on a revert.
func (w *Wallet) TransferTokens(ctx context.Context, to string, amount *big.Int) (string, error) {
	if !common.IsHexAddress(to) {
		return "", fmt.Errorf("destination %q: %w", to, ErrInvalidDestination)
	}

	balance, err := w.balanceOf(ctx, w.from)
	if err != nil {
		return "", fmt.Errorf("failed to check wallet balance: %w", err)
	}
	if balance.Cmp(amount) < 0 {
		return "", fmt.Errorf("wallet holds %s, need %s: %w",
			balance.String(), amount.String(), ErrInsufficientTokenBalance)
	}

	data, err := w.erc20.Pack("transfer", common.HexToAddress(to), amount)
	if err != nil {
		return "", fmt.Errorf("failed to pack transfer call: %w", err)
	}

	gasPrice, err := w.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	nonce, err := w.currentNonceLocked(ctx)
	if err != nil {
		return "", err
	}

	tx := types.NewTransaction(nonce, w.token, big.NewInt(0), w.gasLimit, gasPrice, data)
	signed, err := types.SignTx(tx, types.NewEIP155Signer(w.chainID), w.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := w.client.SendTransaction(ctx, signed); err != nil {
		if isNonceError(err) {
			// The local nonce drifted from the node. Resync so the next
			// attempt starts from the chain's view.
			w.resyncNonceLocked(ctx)
		}
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	w.nonce = nonce + 1

	logger.InfoCtx(ctx, "Broadcast token transfer",
		zap.String("tx_hash", signed.Hash().Hex()),
		zap.String("to", to),
		zap.String("amount", amount.String()),
		zap.Uint64("nonce", nonce),
	)

	return signed.Hash().Hex(), nil
}

// TransferStatus reports the observed state of a broadcast transfer. A
// receipt shallower than the confirmation depth still counts as pending.
func (w *Wallet) TransferStatus(ctx context.Context, txHash string) (*TransferStatus, error) {
	receipt, err := w.client.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return &TransferStatus{State: TxPending}, nil
		}
		return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
	}

	if receipt.Status == types.ReceiptStatusFailed {
		return &TransferStatus{State: TxReverted, Block: receipt.BlockNumber.Uint64()}, nil
	}

	head, err := w.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain head: %w", err)
	}

	confirmations := new(big.Int).Sub(head.Number, receipt.BlockNumber)
	if confirmations.Cmp(new(big.Int).SetUint64(w.confDepth)) < 0 {
		return &TransferStatus{State: TxPending, Block: receipt.BlockNumber.Uint64()}, nil
	}

	return &TransferStatus{State: TxConfirmed, Block: receipt.BlockNumber.Uint64()}, nil
}

// Close releases the underlying client
func (w *Wallet) Close() {
	w.client.Close()
}

func (w *Wallet) balanceOf(ctx context.Context, account common.Address) (*big.Int, error) {
	data, err := w.erc20.Pack("balanceOf", account)
	if err != nil {
		return nil, fmt.Errorf("failed to pack balanceOf call: %w", err)
	}

	result, err := w.client.CallContract(ctx, ethereum.CallMsg{
		To:   &w.token,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call balanceOf: %w", err)
	}

	return new(big.Int).SetBytes(result), nil
}

func (w *Wallet) currentNonceLocked(ctx context.Context) (uint64, error) {
	if !w.nonceInit {
		nonce, err := w.client.PendingNonceAt(ctx, w.from)
		if err != nil {
			return 0, fmt.Errorf("failed to get account nonce: %w", err)
		}
		w.nonce = nonce
		w.nonceInit = true
	}
	return w.nonce, nil
}

func (w *Wallet) resyncNonceLocked(ctx context.Context) {
	nonce, err := w.client.PendingNonceAt(ctx, w.from)
	if err != nil {
		logger.WarnCtx(ctx, "failed to resync nonce", zap.Error(err))
		w.nonceInit = false
		return
	}
	w.nonce = nonce
	w.nonceInit = true
}
