package solana

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Client represents a Solana RPC client
type Client struct {
	endpoint   string
	commitment string
	httpClient *http.Client
	logger     *logrus.Logger
}

// ClientConfig contains configuration for Solana client
type ClientConfig struct {
	Endpoint   string
	Commitment string
	Timeout    time.Duration
}

// RPCRequest represents a JSON-RPC request
type RPCRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

// RPCResponse represents a JSON-RPC response
type RPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error
type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Error implements the error interface
func (e *RPCError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// AccountInfo represents Solana account information
type AccountInfo struct {
	Data       []string `json:"data"`
	Executable bool     `json:"executable"`
	Lamports   uint64   `json:"lamports"`
	Owner      string   `json:"owner"`
}

// DecodeData decodes the base64 account data payload
func (ai *AccountInfo) DecodeData() ([]byte, error) {
	if len(ai.Data) == 0 {
		return nil, fmt.Errorf("account has no data payload")
	}
	decoded, err := base64.StdEncoding.DecodeString(ai.Data[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode account data: %w", err)
	}
	return decoded, nil
}

// AccountInfoResponse represents the response for getAccountInfo
type AccountInfoResponse struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value *AccountInfo `json:"value"`
}

// NewClient creates a new Solana RPC client
func NewClient(config ClientConfig, logger *logrus.Logger) *Client {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Commitment == "" {
		config.Commitment = "confirmed"
	}

	return &Client{
		endpoint:   config.Endpoint,
		commitment: config.Commitment,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// makeRequest makes a JSON-RPC request to Solana
func (c *Client) makeRequest(ctx context.Context, method string, params interface{}) (*RPCResponse, error) {
	request := RPCRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  method,
		Params:  params,
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(requestBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.WithFields(logrus.Fields{
		"method":   method,
		"endpoint": c.endpoint,
	}).Debug("Making RPC request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(responseBody))
	}

	var rpcResponse RPCResponse
	if err := json.Unmarshal(responseBody, &rpcResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if rpcResponse.Error != nil {
		return nil, rpcResponse.Error
	}

	return &rpcResponse, nil
}

// GetAccountInfo gets account information; a nil result means the account
// does not exist at the requested commitment.
func (c *Client) GetAccountInfo(ctx context.Context, address string) (*AccountInfo, error) {
	params := []interface{}{
		address,
		map[string]interface{}{
			"encoding":   "base64",
			"commitment": c.commitment,
		},
	}

	resp, err := c.makeRequest(ctx, "getAccountInfo", params)
	if err != nil {
		return nil, fmt.Errorf("getAccountInfo failed: %w", err)
	}

	var accountResponse AccountInfoResponse
	resultBytes, _ := json.Marshal(resp.Result)
	if err := json.Unmarshal(resultBytes, &accountResponse); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account info: %w", err)
	}

	return accountResponse.Value, nil
}

// GetLatestBlockhash gets the latest blockhash
func (c *Client) GetLatestBlockhash(ctx context.Context) (string, error) {
	params := []interface{}{}
	resp, err := c.makeRequest(ctx, "getLatestBlockhash", params)
	if err != nil {
		return "", fmt.Errorf("getLatestBlockhash failed: %w", err)
	}

	type blockhashResponse struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value struct {
			Blockhash            string `json:"blockhash"`
			LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
		} `json:"value"`
	}

	var bhResp blockhashResponse
	resultBytes, _ := json.Marshal(resp.Result)
	if err := json.Unmarshal(resultBytes, &bhResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal blockhash: %w", err)
	}

	return bhResp.Value.Blockhash, nil
}

// SendTransaction sends a base64-encoded transaction to the network
func (c *Client) SendTransaction(ctx context.Context, transaction string) (string, error) {
	params := []interface{}{
		transaction,
		map[string]interface{}{
			"encoding": "base64",
		},
	}

	resp, err := c.makeRequest(ctx, "sendTransaction", params)
	if err != nil {
		return "", fmt.Errorf("sendTransaction failed: %w", err)
	}

	signature, ok := resp.Result.(string)
	if !ok {
		return "", fmt.Errorf("invalid response format for sendTransaction")
	}

	return signature, nil
}

// ConfirmTransaction checks whether a transaction reached the configured
// commitment level. It returns an error while the signature is still
// pending, so callers poll it.
func (c *Client) ConfirmTransaction(ctx context.Context, signature string) error {
	params := []interface{}{
		[]string{signature},
		map[string]interface{}{
			"searchTransactionHistory": false,
		},
	}

	resp, err := c.makeRequest(ctx, "getSignatureStatuses", params)
	if err != nil {
		return fmt.Errorf("getSignatureStatuses failed: %w", err)
	}

	type signatureStatus struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value []*struct {
			Slot               uint64      `json:"slot"`
			Confirmations      *int        `json:"confirmations"`
			Err                interface{} `json:"err"`
			ConfirmationStatus string      `json:"confirmationStatus"`
		} `json:"value"`
	}

	var status signatureStatus
	resultBytes, _ := json.Marshal(resp.Result)
	if err := json.Unmarshal(resultBytes, &status); err != nil {
		return fmt.Errorf("failed to unmarshal signature status: %w", err)
	}

	if len(status.Value) == 0 || status.Value[0] == nil {
		return fmt.Errorf("transaction not found")
	}
	if status.Value[0].Err != nil {
		return fmt.Errorf("transaction failed: %v", status.Value[0].Err)
	}
	switch status.Value[0].ConfirmationStatus {
	case "confirmed", "finalized":
		return nil
	}
	return fmt.Errorf("transaction not yet confirmed")
}

// GetBalance gets account balance in lamports
func (c *Client) GetBalance(ctx context.Context, address string) (uint64, error) {
	params := []interface{}{address}

	resp, err := c.makeRequest(ctx, "getBalance", params)
	if err != nil {
		return 0, fmt.Errorf("getBalance failed: %w", err)
	}

	type balanceResponse struct {
		Context struct {
			Slot uint64 `json:"slot"`
		} `json:"context"`
		Value uint64 `json:"value"`
	}

	var balResp balanceResponse
	resultBytes, _ := json.Marshal(resp.Result)
	if err := json.Unmarshal(resultBytes, &balResp); err != nil {
		return 0, fmt.Errorf("failed to unmarshal balance: %w", err)
	}

	return balResp.Value, nil
}

// GetSlot gets current slot
func (c *Client) GetSlot(ctx context.Context) (uint64, error) {
	resp, err := c.makeRequest(ctx, "getSlot", nil)
	if err != nil {
		return 0, fmt.Errorf("getSlot failed: %w", err)
	}

	slot, ok := resp.Result.(float64)
	if !ok {
		return 0, fmt.Errorf("invalid response format for getSlot")
	}

	return uint64(slot), nil
}
