// gongde is the client for the deployed merit-counter program: it can
// increment a user's merit account, query its value, close it to reclaim
// rent, and show the wallet balance.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"gongde-client-go/internal/config"
	"gongde-client-go/internal/gongde"
	"gongde-client-go/internal/keypair"
	"gongde-client-go/internal/logger"
	"gongde-client-go/internal/solana"
	"gongde-client-go/internal/wallet"
	"gongde-client-go/pkg/utils"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
)

const Version = "0.3.0"

// CLI flags
var (
	configFile  = flag.String("config", "", "Path to config file")
	keypairPath = flag.String("keypair", "", "Path to key file (overrides config)")
	network     = flag.String("network", "", "Network to use (mainnet/devnet)")
	programID   = flag.String("program-id", "", "Merit program address (overrides config)")
	logLevel    = flag.String("log-level", "", "Log level (debug/info/warn/error)")
	useWS       = flag.Bool("ws", true, "Confirm transactions over WebSocket when possible")
)

// App wires config, logging, RPC and the wallet together
type App struct {
	config    *config.Config
	logger    *logger.Logger
	rpcClient *solana.Client
	wsClient  *solana.WSClient
	wallet    *wallet.Wallet
	programID common.PublicKey
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}
	command := flag.Arg(0)

	app, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := app.run(ctx, command, flag.Args()[1:]); err != nil {
		app.logger.WithError(err).Errorf("Command %s failed", command)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `gongde %s - merit counter client

Usage: gongde [flags] <command>

Commands:
  increment        Increase your merit by one
  query [pubkey]   Show a user's merit account (defaults to your own)
  close            Close your merit account and reclaim rent
  balance          Show wallet balance

Flags:
`, Version)
	flag.PrintDefaults()
}

func newApp() (*App, error) {
	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *network != "" {
		cfg.Network = *network
		cfg.RPCUrl = ""
		cfg.WSUrl = ""
		cfg.ApplyNetworkDefaults()
	}
	if *programID != "" {
		cfg.ProgramID = *programID
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	log, err := logger.NewLogger(logger.LogConfig{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return nil, err
	}
	log.LogStartup(Version, cfg.Network, cfg.RPCUrl)

	if !utils.IsValidSolanaAddress(cfg.ProgramID) {
		return nil, fmt.Errorf("invalid program id %q", cfg.ProgramID)
	}

	rpcClient := solana.NewClient(solana.ClientConfig{
		Endpoint:   cfg.RPCUrl,
		Commitment: cfg.Commitment,
	}, log.Logger)

	var wsClient *solana.WSClient
	if *useWS && cfg.WSUrl != "" {
		wsClient = solana.NewWSClient(cfg.WSUrl, log.Logger)
	}

	path, err := config.ResolveKeypairPath(*keypairPath, cfg)
	if err != nil {
		return nil, err
	}
	kp, err := keypair.LoadKeyFile(path)
	if err != nil {
		return nil, err
	}

	return &App{
		config:    cfg,
		logger:    log,
		rpcClient: rpcClient,
		wsClient:  wsClient,
		wallet:    wallet.NewWallet(kp, rpcClient, wsClient, log.Logger),
		programID: common.PublicKeyFromString(cfg.ProgramID),
	}, nil
}

func (a *App) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "increment":
		return a.increment(ctx)
	case "query":
		return a.query(ctx, args)
	case "close":
		return a.close(ctx)
	case "balance":
		return a.balance(ctx)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *App) increment(ctx context.Context) error {
	meritAccount, _, err := gongde.MeritAccountAddress(a.wallet.GetPublicKey(), a.programID)
	if err != nil {
		return err
	}

	ix := gongde.IncrementInstruction(a.programID, meritAccount, a.wallet.GetPublicKey())
	tx, err := a.wallet.CreateTransaction(ctx, []types.Instruction{ix})
	if err != nil {
		return err
	}

	signature, err := a.wallet.SendAndConfirmTransaction(ctx, tx)
	if err != nil {
		return err
	}
	a.logger.LogTransaction(signature, "confirmed")

	value, err := a.meritValue(ctx, meritAccount)
	if err != nil {
		return fmt.Errorf("incremented, but reading the account back failed: %w", err)
	}
	fmt.Printf("🙏 Merit: %d (%s)\n", value, gongde.MeritLevel(value))
	return nil
}

func (a *App) query(ctx context.Context, args []string) error {
	user := a.wallet.GetPublicKey()
	if len(args) > 0 {
		if !utils.IsValidSolanaAddress(args[0]) {
			return fmt.Errorf("invalid user pubkey %q", args[0])
		}
		user = common.PublicKeyFromString(args[0])
	}

	meritAccount, _, err := gongde.MeritAccountAddress(user, a.programID)
	if err != nil {
		return err
	}

	info, err := a.rpcClient.GetAccountInfo(ctx, meritAccount.String())
	if err != nil {
		return err
	}
	fmt.Printf("👤 User:          %s\n", user.String())
	fmt.Printf("📍 Merit account: %s\n", meritAccount.String())
	if info == nil || info.Lamports == 0 {
		fmt.Println("❌ No merit account yet; run `gongde increment` to create one")
		return nil
	}

	data, err := info.DecodeData()
	if err != nil {
		return err
	}
	value, err := gongde.ReadMeritValue(data)
	if err != nil {
		return err
	}

	fmt.Printf("🙏 Merit:         %d\n", value)
	fmt.Printf("🏅 Level:         %s\n", gongde.MeritLevel(value))
	fmt.Printf("💰 Rent balance:  %.6f SOL\n", config.ConvertLamportsToSOL(info.Lamports))
	return nil
}

func (a *App) close(ctx context.Context) error {
	meritAccount, _, err := gongde.MeritAccountAddress(a.wallet.GetPublicKey(), a.programID)
	if err != nil {
		return err
	}

	ix := gongde.CloseInstruction(a.programID, meritAccount, a.wallet.GetPublicKey())
	tx, err := a.wallet.CreateTransaction(ctx, []types.Instruction{ix})
	if err != nil {
		return err
	}

	signature, err := a.wallet.SendAndConfirmTransaction(ctx, tx)
	if err != nil {
		return err
	}
	a.logger.LogTransaction(signature, "confirmed")
	fmt.Println("✅ Merit account closed, rent reclaimed")
	return nil
}

func (a *App) balance(ctx context.Context) error {
	lamports, err := a.wallet.GetBalance(ctx)
	if err != nil {
		return err
	}
	a.logger.LogBalance(config.ConvertLamportsToSOL(lamports), lamports)
	fmt.Printf("💰 %s: %.6f SOL (%d lamports)\n", a.wallet.GetPublicKeyString(), config.ConvertLamportsToSOL(lamports), lamports)
	return nil
}

func (a *App) meritValue(ctx context.Context, meritAccount common.PublicKey) (uint64, error) {
	info, err := a.rpcClient.GetAccountInfo(ctx, meritAccount.String())
	if err != nil {
		return 0, err
	}
	if info == nil {
		return 0, fmt.Errorf("merit account %s not found", meritAccount.String())
	}
	data, err := info.DecodeData()
	if err != nil {
		return 0, err
	}
	return gongde.ReadMeritValue(data)
}
