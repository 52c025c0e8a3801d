// Package mnemonic normalizes BIP-39 recovery phrases across the two
// wordlists the surrounding tooling accepts: English and Simplified Chinese.
// A phrase is validated against every supported wordlist, and a valid phrase
// is reduced to its canonical entropy plus a rendering in each language.
package mnemonic

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	bip39 "github.com/tyler-smith/go-bip39"
	"github.com/tyler-smith/go-bip39/wordlists"
)

var (
	// ErrInvalidMnemonic covers wordlist membership and word-count failures.
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	// ErrInvalidChecksum is returned when the words are all known but the
	// embedded checksum does not match the leading entropy bits.
	ErrInvalidChecksum = fmt.Errorf("%w: checksum mismatch", ErrInvalidMnemonic)
)

// Language identifies a supported BIP-39 wordlist.
type Language string

const (
	LanguageEnglish           Language = "english"
	LanguageChineseSimplified Language = "chinese_simplified"
)

// wordlistFor maps each supported language to its fixed wordlist.
func wordlistFor(lang Language) []string {
	switch lang {
	case LanguageChineseSimplified:
		return wordlists.ChineseSimplified
	default:
		return wordlists.English
	}
}

// Normalized is the result of validating a recovery phrase: the canonical
// entropy it encodes and the phrase re-rendered in every supported language.
type Normalized struct {
	Entropy           []byte
	English           string
	ChineseSimplified string
	// Matched lists every wordlist the input validated against. The two
	// supported wordlists share no words, so in practice it holds one entry.
	Matched []Language
}

// The bip39 package keeps its active wordlist in package-global state.
// All wordlist swaps are serialized here and the English default restored
// afterwards, so concurrent callers and other bip39 users stay consistent.
var wordlistMu sync.Mutex

func withWordList(list []string, fn func() error) error {
	wordlistMu.Lock()
	defer wordlistMu.Unlock()
	bip39.SetWordList(list)
	defer bip39.SetWordList(wordlists.English)
	return fn()
}

// Normalize validates phrase against all supported wordlists and, on
// success, returns its entropy and both language renderings. The phrase may
// use any whitespace between words. It fails with ErrInvalidMnemonic (or
// ErrInvalidChecksum) when no wordlist accepts the phrase; there is no
// partial result.
func Normalize(phrase string) (*Normalized, error) {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty phrase", ErrInvalidMnemonic)
	}
	canonical := strings.Join(words, " ")

	var (
		entropy     []byte
		matched     []Language
		sawChecksum bool
	)
	for _, lang := range detectionOrder(canonical) {
		e, err := entropyIn(canonical, lang)
		if err != nil {
			if errors.Is(err, ErrInvalidChecksum) {
				sawChecksum = true
			}
			continue
		}
		entropy = e
		matched = append(matched, lang)
	}
	if len(matched) == 0 {
		if sawChecksum {
			return nil, ErrInvalidChecksum
		}
		return nil, fmt.Errorf("%w: phrase matches no supported wordlist", ErrInvalidMnemonic)
	}

	english, err := Render(entropy, LanguageEnglish)
	if err != nil {
		return nil, err
	}
	chinese, err := Render(entropy, LanguageChineseSimplified)
	if err != nil {
		return nil, err
	}

	return &Normalized{
		Entropy:           entropy,
		English:           english,
		ChineseSimplified: chinese,
		Matched:           matched,
	}, nil
}

// Render encodes entropy as a phrase in the given language.
func Render(entropy []byte, lang Language) (string, error) {
	var phrase string
	err := withWordList(wordlistFor(lang), func() error {
		m, err := bip39.NewMnemonic(entropy)
		if err != nil {
			return fmt.Errorf("render %s mnemonic: %w", lang, err)
		}
		phrase = m
		return nil
	})
	return phrase, err
}

// entropyIn decodes the phrase under a single wordlist.
func entropyIn(phrase string, lang Language) ([]byte, error) {
	var entropy []byte
	err := withWordList(wordlistFor(lang), func() error {
		e, err := bip39.EntropyFromMnemonic(phrase)
		if err != nil {
			if errors.Is(err, bip39.ErrChecksumIncorrect) {
				return ErrInvalidChecksum
			}
			return fmt.Errorf("%w: %s", ErrInvalidMnemonic, err)
		}
		entropy = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entropy, nil
}

// detectionOrder orders the validation attempts. The ASCII test is only a
// hint for which wordlist to try first; both are always attempted.
func detectionOrder(phrase string) []Language {
	if isPrintableASCII(phrase) {
		return []Language{LanguageEnglish, LanguageChineseSimplified}
	}
	return []Language{LanguageChineseSimplified, LanguageEnglish}
}

func isPrintableASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}
