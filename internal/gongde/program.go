// Package gongde encodes the instruction interface of the deployed
// merit-counter program. The program itself is an external collaborator;
// only its account layout and single-byte instruction tags live here.
package gongde

import (
	"encoding/binary"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
	solanago "github.com/gagliardetto/solana-go"
)

// MeritValueSize is the account data length holding the merit counter (u64, little-endian)
const MeritValueSize = 8

// meritAccountSeed prefixes the PDA derivation for per-user merit accounts
const meritAccountSeed = "counter"

// Instruction tags understood by the program
const (
	InstructionIncrement uint8 = 0
	InstructionClose     uint8 = 1
)

// MeritAccountAddress derives the per-user merit account: the PDA of
// ["counter", user] under the program id.
func MeritAccountAddress(user, programID common.PublicKey) (common.PublicKey, uint8, error) {
	seeds := [][]byte{
		[]byte(meritAccountSeed),
		user.Bytes(),
	}

	addr, nonce, err := solanago.FindProgramAddress(seeds, solanago.PublicKeyFromBytes(programID.Bytes()))
	if err != nil {
		return common.PublicKey{}, 0, fmt.Errorf("failed to derive merit account: %w", err)
	}

	return common.PublicKeyFromBytes(addr.Bytes()), nonce, nil
}

// IncrementInstruction builds the increment instruction. The program
// creates the merit account on first use, so the user and the system
// program ride along on every call.
func IncrementInstruction(programID, meritAccount, user common.PublicKey) types.Instruction {
	return types.Instruction{
		ProgramID: programID,
		Accounts: []types.AccountMeta{
			{PubKey: meritAccount, IsSigner: false, IsWritable: true},
			{PubKey: user, IsSigner: true, IsWritable: true},
			{PubKey: common.SystemProgramID, IsSigner: false, IsWritable: false},
		},
		Data: []byte{InstructionIncrement},
	}
}

// CloseInstruction builds the close instruction; the account's rent is
// returned to the user.
func CloseInstruction(programID, meritAccount, user common.PublicKey) types.Instruction {
	return types.Instruction{
		ProgramID: programID,
		Accounts: []types.AccountMeta{
			{PubKey: meritAccount, IsSigner: false, IsWritable: true},
			{PubKey: user, IsSigner: true, IsWritable: true},
		},
		Data: []byte{InstructionClose},
	}
}

// ReadMeritValue decodes the merit counter from raw account data.
func ReadMeritValue(data []byte) (uint64, error) {
	if len(data) < MeritValueSize {
		return 0, fmt.Errorf("account data too small: %d bytes, want %d", len(data), MeritValueSize)
	}
	return binary.LittleEndian.Uint64(data[:MeritValueSize]), nil
}

// MeritLevel maps a merit value to its display label.
func MeritLevel(value uint64) string {
	switch {
	case value == 0:
		return "🥉 Novice"
	case value <= 10:
		return "🥈 Kind Thought"
	case value <= 100:
		return "🥇 Good Deed"
	case value <= 1000:
		return "🏆 Virtuous"
	case value <= 10000:
		return "💎 Sage"
	default:
		return "🌟 Boundless Merit"
	}
}
