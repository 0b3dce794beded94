package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Disidente87/vendor-wars-sub003/internal/mocks/adapter"
)

// Throwaway key, never funded anywhere.
const testPrivateKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

const (
	testTokenContract = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	testDestination   = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

func newTestWallet(t *testing.T) (*Wallet, *mocks.MockEthClient) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthClient(ctrl)

	wallet, err := NewWallet(client, Config{
		PrivateKeyHex:     testPrivateKey,
		ChainID:           8453,
		TokenContract:     testTokenContract,
		GasLimit:          100000,
		ConfirmationDepth: 3,
	})
	require.NoError(t, err)

	return wallet, client
}

func expectBalance(client *mocks.MockEthClient, balance *big.Int) {
	client.EXPECT().CallContract(gomock.Any(), gomock.Any(), gomock.Nil()).
		Return(balance.FillBytes(make([]byte, 32)), nil)
}

func TestNewWalletInvalidContract(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthClient(ctrl)

	_, err := NewWallet(client, Config{
		PrivateKeyHex: testPrivateKey,
		TokenContract: "not-an-address",
	})
	assert.Error(t, err)
}

func TestNewWalletInvalidKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthClient(ctrl)

	_, err := NewWallet(client, Config{
		PrivateKeyHex: "zz",
		TokenContract: testTokenContract,
	})
	assert.Error(t, err)
}

func TestNewWalletAcceptsHexPrefix(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mocks.NewMockEthClient(ctrl)

	wallet, err := NewWallet(client, Config{
		PrivateKeyHex: "0x" + testPrivateKey,
		TokenContract: testTokenContract,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, wallet.Address())
}

func TestTransferTokens(t *testing.T) {
	wallet, client := newTestWallet(t)
	ctx := context.Background()

	expectBalance(client, big.NewInt(1000))
	client.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(1_000_000_000), nil)
	client.EXPECT().PendingNonceAt(ctx, wallet.from).Return(uint64(7), nil)

	var sent *types.Transaction
	client.EXPECT().SendTransaction(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, tx *types.Transaction) error {
			sent = tx
			return nil
		})

	hash, err := wallet.TransferTokens(ctx, testDestination, big.NewInt(60))
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	require.NotNil(t, sent)
	assert.Equal(t, uint64(7), sent.Nonce())
	assert.Equal(t, wallet.token, *sent.To())
	assert.Zero(t, sent.Value().Sign())
}

func TestTransferTokensNonceAdvances(t *testing.T) {
	wallet, client := newTestWallet(t)
	ctx := context.Background()

	expectBalance(client, big.NewInt(1000))
	expectBalance(client, big.NewInt(1000))
	client.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(1), nil).Times(2)
	// The node is consulted once; after that the wallet owns the nonce.
	client.EXPECT().PendingNonceAt(ctx, wallet.from).Return(uint64(7), nil)

	var nonces []uint64
	client.EXPECT().SendTransaction(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, tx *types.Transaction) error {
			nonces = append(nonces, tx.Nonce())
			return nil
		}).Times(2)

	_, err := wallet.TransferTokens(ctx, testDestination, big.NewInt(10))
	require.NoError(t, err)
	_, err = wallet.TransferTokens(ctx, testDestination, big.NewInt(10))
	require.NoError(t, err)

	assert.Equal(t, []uint64{7, 8}, nonces)
}

func TestTransferTokensInvalidDestination(t *testing.T) {
	wallet, _ := newTestWallet(t)

	_, err := wallet.TransferTokens(context.Background(), "bogus", big.NewInt(10))
	assert.ErrorIs(t, err, ErrInvalidDestination)
	assert.True(t, IsPermanent(err))
}

func TestTransferTokensInsufficientBalance(t *testing.T) {
	wallet, client := newTestWallet(t)
	ctx := context.Background()

	expectBalance(client, big.NewInt(5))

	_, err := wallet.TransferTokens(ctx, testDestination, big.NewInt(10))
	assert.ErrorIs(t, err, ErrInsufficientTokenBalance)
	assert.True(t, IsPermanent(err))
}

func TestTransferTokensNonceResync(t *testing.T) {
	wallet, client := newTestWallet(t)
	ctx := context.Background()

	expectBalance(client, big.NewInt(1000))
	client.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(1), nil)
	client.EXPECT().PendingNonceAt(ctx, wallet.from).Return(uint64(7), nil)
	client.EXPECT().SendTransaction(ctx, gomock.Any()).
		Return(errors.New("nonce too low"))
	// Failure resyncs from the node.
	client.EXPECT().PendingNonceAt(ctx, wallet.from).Return(uint64(9), nil)

	_, err := wallet.TransferTokens(ctx, testDestination, big.NewInt(10))
	require.Error(t, err)
	assert.False(t, IsPermanent(err))

	// Next attempt picks up the resynced nonce without asking the node again.
	expectBalance(client, big.NewInt(1000))
	client.EXPECT().SuggestGasPrice(ctx).Return(big.NewInt(1), nil)
	client.EXPECT().SendTransaction(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, tx *types.Transaction) error {
			assert.Equal(t, uint64(9), tx.Nonce())
			return nil
		})

	_, err = wallet.TransferTokens(ctx, testDestination, big.NewInt(10))
	require.NoError(t, err)
}

func TestTransferStatusNotFound(t *testing.T) {
	wallet, client := newTestWallet(t)
	ctx := context.Background()

	client.EXPECT().TransactionReceipt(ctx, gomock.Any()).
		Return(nil, ethereum.NotFound)

	status, err := wallet.TransferStatus(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, TxPending, status.State)
}

func TestTransferStatusReverted(t *testing.T) {
	wallet, client := newTestWallet(t)
	ctx := context.Background()

	client.EXPECT().TransactionReceipt(ctx, gomock.Any()).Return(&types.Receipt{
		Status:      types.ReceiptStatusFailed,
		BlockNumber: big.NewInt(100),
	}, nil)

	status, err := wallet.TransferStatus(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, TxReverted, status.State)
	assert.Equal(t, uint64(100), status.Block)
}

func TestTransferStatusConfirmationDepth(t *testing.T) {
	wallet, client := newTestWallet(t)
	ctx := context.Background()

	receipt := &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(100),
	}

	// Only one block on top: still pending at depth 3.
	client.EXPECT().TransactionReceipt(ctx, gomock.Any()).Return(receipt, nil)
	client.EXPECT().HeaderByNumber(ctx, gomock.Nil()).
		Return(&types.Header{Number: big.NewInt(101)}, nil)

	status, err := wallet.TransferStatus(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, TxPending, status.State)

	// Deep enough now.
	client.EXPECT().TransactionReceipt(ctx, gomock.Any()).Return(receipt, nil)
	client.EXPECT().HeaderByNumber(ctx, gomock.Nil()).
		Return(&types.Header{Number: big.NewInt(103)}, nil)

	status, err = wallet.TransferStatus(ctx, "0xabc")
	require.NoError(t, err)
	assert.Equal(t, TxConfirmed, status.State)
	assert.Equal(t, uint64(100), status.Block)
}
