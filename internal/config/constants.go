package config

// Network endpoints
const (
	MainnetRPCURL = "https://api.mainnet-beta.solana.com"
	MainnetWSURL  = "wss://api.mainnet-beta.solana.com"
	DevnetRPCURL  = "https://api.devnet.solana.com"
	DevnetWSURL   = "wss://api.devnet.solana.com"
)

// LamportsPerSOL is the number of lamports in one SOL
const LamportsPerSOL = 1_000_000_000

// DefaultProgramID is the deployed merit-counter program address
const DefaultProgramID = "9jpqDtrTj4GyNLVDjydbJVW1pWkZypHwpqDyLt2Ragt9"

// ConvertLamportsToSOL converts lamports to SOL
func ConvertLamportsToSOL(lamports uint64) float64 {
	return float64(lamports) / LamportsPerSOL
}

// ConvertSOLToLamports converts SOL to lamports
func ConvertSOLToLamports(sol float64) uint64 {
	return uint64(sol * LamportsPerSOL)
}
