// exportkey reads a Solana key file (the JSON array of 64 secret-key bytes)
// and prints the secret key and its public key in base-58, for pasting into
// wallet tooling. It never modifies the key file.
package main

import (
	"flag"
	"fmt"
	"os"

	"gongde-client-go/internal/config"
	"gongde-client-go/internal/keypair"
)

var (
	keypairPath = flag.String("keypair", "", "Path to key file (default: keypair_path from config, then ~/.config/solana/id.json)")
	configFile  = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fail(err)
	}

	path, err := config.ResolveKeypairPath(*keypairPath, cfg)
	if err != nil {
		fail(err)
	}

	kp, err := keypair.LoadKeyFile(path)
	if err != nil {
		fail(err)
	}

	fmt.Printf("Public key: %s\n", kp.PublicKeyBase58())
	fmt.Printf("Secret key: %s\n", kp.SecretKeyBase58())
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
