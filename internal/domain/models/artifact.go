package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ArtifactFormat identifies the compiler toolchain layout an artifact came from
type ArtifactFormat string

const (
	ArtifactFormatTruffle ArtifactFormat = "truffle"
	ArtifactFormatFoundry ArtifactFormat = "foundry"
)

// BytecodeObject represents bytecode information in a Foundry artifact
type BytecodeObject struct {
	Object string `json:"object"`
}

// Bytecode accepts both the truffle form (a hex string) and the foundry form
// (an object with the hex string under "object").
type Bytecode string

func (b *Bytecode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = Bytecode(s)
		return nil
	}

	var obj BytecodeObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("bytecode is neither a string nor an object: %w", err)
	}
	*b = Bytecode(obj.Object)
	return nil
}

// Bytes decodes the hex bytecode. Unlinked library placeholders fail to decode.
func (b Bytecode) Bytes() ([]byte, error) {
	s := strings.TrimSpace(string(b))
	if s == "" || s == "0x" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

// Artifact represents a compiled contract as written by truffle or forge
type Artifact struct {
	ContractName     string          `json:"contractName,omitempty"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         Bytecode        `json:"bytecode"`
	DeployedBytecode Bytecode        `json:"deployedBytecode"`
	SourcePath       string          `json:"sourcePath,omitempty"`

	// Set by the loader
	Path   string         `json:"-"`
	Format ArtifactFormat `json:"-"`
}

// CompiledContract is a loaded artifact with its ABI parsed and bytecode decoded
type CompiledContract struct {
	Name     string
	Artifact *Artifact
	ABI      abi.ABI
	Bytecode []byte
}
