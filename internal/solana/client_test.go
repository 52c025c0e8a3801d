package solana

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// rpcServer answers each JSON-RPC method with a canned result payload.
func rpcServer(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var req RPCRequest
		if err := json.Unmarshal(body, &req); err != nil {
			t.Fatalf("server got unparseable request: %v", err)
		}
		result, ok := results[req.Method]
		if !ok {
			t.Fatalf("server got unexpected method %q", req.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"jsonrpc":"2.0","id":1,"result":`+result+`}`)
	}))
}

func newTestClient(endpoint string) *Client {
	return NewClient(ClientConfig{Endpoint: endpoint}, testLogger())
}

func TestGetBalance(t *testing.T) {
	srv := rpcServer(t, map[string]string{
		"getBalance": `{"context":{"slot":100},"value":1500000000}`,
	})
	defer srv.Close()

	balance, err := newTestClient(srv.URL).GetBalance(context.Background(), "BvpjTs88TmXJrFfghPJmo1kEJXdtqXX8SdvW6jv8ng9R")
	if err != nil {
		t.Fatalf("getBalance failed: %v", err)
	}
	if balance != 1500000000 {
		t.Fatalf("expected 1500000000 lamports, got %d", balance)
	}
}

func TestGetLatestBlockhash(t *testing.T) {
	srv := rpcServer(t, map[string]string{
		"getLatestBlockhash": `{"context":{"slot":100},"value":{"blockhash":"EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N","lastValidBlockHeight":3090}}`,
	})
	defer srv.Close()

	blockhash, err := newTestClient(srv.URL).GetLatestBlockhash(context.Background())
	if err != nil {
		t.Fatalf("getLatestBlockhash failed: %v", err)
	}
	if blockhash != "EkSnNWid2cvwEVnVx9aBqawnmiCNiDgp3gUdkDPTKN1N" {
		t.Fatalf("unexpected blockhash %q", blockhash)
	}
}

func TestGetAccountInfoDecodesData(t *testing.T) {
	// base64 of the 8 bytes 0x2a,0,0,0,0,0,0,0 (merit value 42)
	srv := rpcServer(t, map[string]string{
		"getAccountInfo": `{"context":{"slot":100},"value":{"data":["KgAAAAAAAAA=","base64"],"executable":false,"lamports":946560,"owner":"9jpqDtrTj4GyNLVDjydbJVW1pWkZypHwpqDyLt2Ragt9"}}`,
	})
	defer srv.Close()

	info, err := newTestClient(srv.URL).GetAccountInfo(context.Background(), "somepda")
	if err != nil {
		t.Fatalf("getAccountInfo failed: %v", err)
	}
	if info == nil {
		t.Fatalf("expected account info, got nil")
	}
	data, err := info.DecodeData()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(data) != 8 || data[0] != 0x2a {
		t.Fatalf("unexpected account data %v", data)
	}
}

func TestGetAccountInfoMissingAccount(t *testing.T) {
	srv := rpcServer(t, map[string]string{
		"getAccountInfo": `{"context":{"slot":100},"value":null}`,
	})
	defer srv.Close()

	info, err := newTestClient(srv.URL).GetAccountInfo(context.Background(), "missing")
	if err != nil {
		t.Fatalf("getAccountInfo failed: %v", err)
	}
	if info != nil {
		t.Fatalf("missing account must yield nil info, got %+v", info)
	}
}

func TestConfirmTransaction(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"confirmed", `[{"slot":100,"confirmations":5,"err":null,"confirmationStatus":"confirmed"}]`, false},
		{"finalized", `[{"slot":100,"confirmations":null,"err":null,"confirmationStatus":"finalized"}]`, false},
		{"processed only", `[{"slot":100,"confirmations":0,"err":null,"confirmationStatus":"processed"}]`, true},
		{"failed", `[{"slot":100,"confirmations":5,"err":{"InstructionError":[0,"Custom"]},"confirmationStatus":"confirmed"}]`, true},
		{"not found", `[null]`, true},
	}

	for _, tc := range cases {
		srv := rpcServer(t, map[string]string{
			"getSignatureStatuses": `{"context":{"slot":100},"value":` + tc.value + `}`,
		})
		err := newTestClient(srv.URL).ConfirmTransaction(context.Background(), "sig")
		srv.Close()
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestRPCErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"jsonrpc":"2.0","id":1,"error":{"code":-32602,"message":"Invalid param"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetBalance(context.Background(), "whatever")
	if err == nil {
		t.Fatalf("expected RPC error to surface")
	}
	if !strings.Contains(err.Error(), "Invalid param") {
		t.Fatalf("error should carry the RPC message, got %v", err)
	}
}

func TestSendTransaction(t *testing.T) {
	srv := rpcServer(t, map[string]string{
		"sendTransaction": `"5j7s6NiJS3JAkvgkoc18WVAsiSaci2pxB2A6ueCJP4tprA2TFg9wSyTLeYouxPBJEMzJinENTkpA52YStRW5Dia7"`,
	})
	defer srv.Close()

	sig, err := newTestClient(srv.URL).SendTransaction(context.Background(), "AQAB")
	if err != nil {
		t.Fatalf("sendTransaction failed: %v", err)
	}
	if !strings.HasPrefix(sig, "5j7s6NiJS3") {
		t.Fatalf("unexpected signature %q", sig)
	}
}
