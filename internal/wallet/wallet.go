package wallet

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"gongde-client-go/internal/config"
	"gongde-client-go/internal/keypair"
	"gongde-client-go/internal/solana"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	"github.com/sirupsen/logrus"
)

// Wallet represents a Solana wallet
type Wallet struct {
	account   types.Account
	rpcClient *solana.Client
	wsClient  *solana.WSClient
	logger    *logrus.Logger
}

// NewWallet creates a wallet from a derived keypair. The WebSocket client is
// optional; without it confirmation falls back to polling.
func NewWallet(kp *keypair.Keypair, rpcClient *solana.Client, wsClient *solana.WSClient, logger *logrus.Logger) *Wallet {
	w := &Wallet{
		account:   kp.Account(),
		rpcClient: rpcClient,
		wsClient:  wsClient,
		logger:    logger,
	}

	logger.WithFields(logrus.Fields{
		"public_key": w.GetPublicKeyString(),
	}).Info("Wallet initialized")

	return w
}

// NewWalletFromKeyFile creates a wallet from a structured key file
func NewWalletFromKeyFile(path string, rpcClient *solana.Client, wsClient *solana.WSClient, logger *logrus.Logger) (*Wallet, error) {
	kp, err := keypair.LoadKeyFile(path)
	if err != nil {
		return nil, err
	}
	return NewWallet(kp, rpcClient, wsClient, logger), nil
}

// GetPublicKey returns the wallet's public key
func (w *Wallet) GetPublicKey() common.PublicKey {
	return w.account.PublicKey
}

// GetPublicKeyString returns the wallet's public key as base58 string
func (w *Wallet) GetPublicKeyString() string {
	return w.account.PublicKey.String()
}

// GetAccount returns the wallet's account for signing transactions
func (w *Wallet) GetAccount() types.Account {
	return w.account
}

// GetBalance returns the wallet's SOL balance in lamports
func (w *Wallet) GetBalance(ctx context.Context) (uint64, error) {
	balance, err := w.rpcClient.GetBalance(ctx, w.GetPublicKeyString())
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	w.logger.WithFields(logrus.Fields{
		"balance_lamports": balance,
		"balance_sol":      config.ConvertLamportsToSOL(balance),
	}).Debug("Retrieved wallet balance")

	return balance, nil
}

// GetBalanceSOL returns the wallet's SOL balance as float64
func (w *Wallet) GetBalanceSOL(ctx context.Context) (float64, error) {
	balance, err := w.GetBalance(ctx)
	if err != nil {
		return 0, err
	}
	return config.ConvertLamportsToSOL(balance), nil
}

// CreateTransaction creates a new transaction with recent blockhash
func (w *Wallet) CreateTransaction(ctx context.Context, instructions []types.Instruction) (types.Transaction, error) {
	blockhash, err := w.rpcClient.GetLatestBlockhash(ctx)
	if err != nil {
		return types.Transaction{}, fmt.Errorf("failed to get recent blockhash: %w", err)
	}

	transaction, err := types.NewTransaction(types.NewTransactionParam{
		Signers: []types.Account{w.account},
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        w.account.PublicKey,
			RecentBlockhash: blockhash,
			Instructions:    instructions,
		}),
	})
	if err != nil {
		return types.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}

	w.logger.WithFields(logrus.Fields{
		"blockhash":    blockhash,
		"instructions": len(instructions),
	}).Debug("Created transaction")

	return transaction, nil
}

// SendTransaction sends a transaction to the network
func (w *Wallet) SendTransaction(ctx context.Context, transaction types.Transaction) (string, error) {
	txBytes, err := transaction.Serialize()
	if err != nil {
		return "", fmt.Errorf("failed to serialize transaction: %w", err)
	}

	encodedTx := base64.StdEncoding.EncodeToString(txBytes)

	signature, err := w.rpcClient.SendTransaction(ctx, encodedTx)
	if err != nil {
		return "", fmt.Errorf("failed to send transaction: %w", err)
	}

	w.logger.WithField("signature", signature).Info("Transaction sent")
	return signature, nil
}

// SendAndConfirmTransaction sends a transaction and waits for confirmation
func (w *Wallet) SendAndConfirmTransaction(ctx context.Context, transaction types.Transaction) (string, error) {
	signature, err := w.SendTransaction(ctx, transaction)
	if err != nil {
		return "", err
	}

	confirmCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	if err := w.WaitForConfirmation(confirmCtx, signature); err != nil {
		return signature, fmt.Errorf("transaction sent but confirmation failed: %w", err)
	}

	w.logger.WithField("signature", signature).Info("Transaction confirmed")
	return signature, nil
}

// WaitForConfirmation waits for transaction confirmation, preferring the
// WebSocket subscription when available.
func (w *Wallet) WaitForConfirmation(ctx context.Context, signature string) error {
	if w.wsClient != nil {
		if err := w.wsClient.ConfirmSignature(ctx, signature, "confirmed"); err == nil {
			return nil
		} else if ctx.Err() != nil {
			return err
		}
		// Subscription failed; fall through to polling.
		w.logger.WithField("signature", signature).Debug("WebSocket confirmation unavailable, polling")
	}

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := w.rpcClient.ConfirmTransaction(ctx, signature)
			if err == nil {
				return nil
			}
			w.logger.WithField("signature", signature).Debug("Waiting for confirmation...")
		}
	}
}
