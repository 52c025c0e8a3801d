// keytool interactively derives a Solana signing keypair from a BIP-39
// recovery phrase. It prompts for the phrase and an optional passphrase on
// stdin and prints, in order: the entropy, both wordlist renderings of the
// phrase, the derivation seed, and the keypair in every encoding wallet
// tooling accepts. Nothing is written to disk.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"gongde-client-go/internal/keypair"
	"gongde-client-go/internal/mnemonic"
	"gongde-client-go/pkg/utils"
)

func main() {
	reader := bufio.NewReader(os.Stdin)

	phrase, err := promptLine(reader, "Recovery phrase: ")
	if err != nil {
		fail(fmt.Errorf("failed to read recovery phrase: %w", err))
	}

	passphrase, err := promptLine(reader, "Passphrase (empty for none): ")
	if err != nil && err != io.EOF {
		fail(fmt.Errorf("failed to read passphrase: %w", err))
	}

	norm, err := mnemonic.Normalize(phrase)
	if err != nil {
		fail(err)
	}

	// The canonical English rendering feeds derivation, so either rendering
	// of the same entropy produces the same keypair.
	seed := keypair.DeriveSeed(norm.English, passphrase)
	kp, err := keypair.FromSeed(seed[:keypair.SeedSize])
	if err != nil {
		fail(err)
	}

	fmt.Printf("Entropy:          %s\n", utils.EncodeHex(norm.Entropy))
	fmt.Printf("Phrase (en):      %s\n", norm.English)
	fmt.Printf("Phrase (zh-hans): %s\n", norm.ChineseSimplified)
	fmt.Printf("Derivation seed:  %s\n", utils.EncodeHex(seed))
	fmt.Printf("Public key:       %s\n", kp.PublicKeyBase58())
	fmt.Printf("Secret key:       %s\n", kp.SecretKeyBase58())
	fmt.Printf("Key file:         %s\n", kp.MarshalKeyFile())
}

// promptLine writes a prompt to stderr and blocks on one line of stdin.
func promptLine(reader *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := reader.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err == io.EOF && line != "" {
		return line, nil
	}
	if err != nil {
		return line, err
	}
	return line, nil
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
