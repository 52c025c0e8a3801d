package solana

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WSClient confirms transaction signatures over the Solana WebSocket API.
// signatureSubscribe fires exactly once per signature, so each confirmation
// uses a short-lived connection instead of a managed subscription pool.
type WSClient struct {
	url    string
	logger *logrus.Logger
}

// WSMessage represents a WebSocket JSON-RPC message
type WSMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *int              `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  json.RawMessage   `json:"params,omitempty"`
	Result  interface{}       `json:"result,omitempty"`
	Error   *jsonrpc.RPCError `json:"error,omitempty"`
}

// SignatureNotification represents a signatureSubscribe notification
type SignatureNotification struct {
	Subscription int `json:"subscription"`
	Result       struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value struct {
			Err interface{} `json:"err"`
		} `json:"value"`
	} `json:"result"`
}

// NewWSClient creates a new WebSocket confirmation client
func NewWSClient(url string, logger *logrus.Logger) *WSClient {
	return &WSClient{url: url, logger: logger}
}

// ConfirmSignature subscribes to a signature and blocks until the node
// reports it at the requested commitment, the transaction fails, or ctx is
// done.
func (w *WSClient) ConfirmSignature(ctx context.Context, signature, commitment string) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, w.url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", w.url, err)
	}
	defer conn.Close()

	w.logger.WithFields(logrus.Fields{
		"url":       w.url,
		"signature": signature,
	}).Debug("Subscribing to signature")

	id := 1
	subscribe := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      id,
		"method":  "signatureSubscribe",
		"params": []interface{}{
			signature,
			map[string]interface{}{"commitment": commitment},
		},
	}
	if err := conn.WriteJSON(subscribe); err != nil {
		return fmt.Errorf("failed to send subscription: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}

	// Cancellation closes the connection, which unblocks ReadMessage.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("websocket read failed: %w", err)
		}

		var msg WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			w.logger.WithError(err).Debug("Skipping unparseable WebSocket message")
			continue
		}
		if msg.Error != nil {
			return fmt.Errorf("subscription rejected: %s", msg.Error.Message)
		}
		if msg.Method != "signatureNotification" {
			continue
		}

		var notification SignatureNotification
		if err := json.Unmarshal(msg.Params, &notification); err != nil {
			return fmt.Errorf("failed to parse signature notification: %w", err)
		}
		if txErr := notification.Result.Value.Err; txErr != nil {
			return fmt.Errorf("transaction failed: %v", txErr)
		}

		w.logger.WithFields(logrus.Fields{
			"signature": signature,
			"slot":      notification.Result.Context.Slot,
		}).Debug("Signature confirmed")
		return nil
	}
}
