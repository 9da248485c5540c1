package artifacts

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/degenpro/depr-deploy/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tokenABI = `[
  {"type":"constructor","inputs":[{"name":"name","type":"string"},{"name":"symbol","type":"string"}],"stateMutability":"nonpayable"},
  {"type":"function","name":"initialMint","inputs":[{"name":"to","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}
]`

func newTestRepository(t *testing.T, root string, project *config.ProjectConfig) *Repository {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRepository(&config.RuntimeConfig{ProjectRoot: root, Project: project}, logger)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestRepositoryLoad(t *testing.T) {
	t.Run("truffle layout", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "build", "contracts", "DEPRToken.json"), `{
  "contractName": "DEPRToken",
  "abi": `+tokenABI+`,
  "bytecode": "0x6080604052",
  "deployedBytecode": "0x6080"
}`)

		repo := newTestRepository(t, root, nil)
		compiled, err := repo.Load("DEPRToken")
		require.NoError(t, err)

		assert.Equal(t, "DEPRToken", compiled.Name)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40, 0x52}, compiled.Bytecode)
		assert.Equal(t, models.ArtifactFormatTruffle, compiled.Artifact.Format)
		assert.Len(t, compiled.ABI.Constructor.Inputs, 2)
		assert.Contains(t, compiled.ABI.Methods, "initialMint")

		again, err := repo.Load("DEPRToken")
		require.NoError(t, err)
		assert.Same(t, compiled, again)
	})

	t.Run("foundry layout", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "out", "DEPRPreSale.sol", "DEPRPreSale.json"), `{
  "abi": [{"type":"function","name":"open","inputs":[],"outputs":[],"stateMutability":"nonpayable"}],
  "bytecode": {"object": "0x60806040", "sourceMap": "", "linkReferences": {}},
  "deployedBytecode": {"object": "0x6080"}
}`)

		repo := newTestRepository(t, root, &config.ProjectConfig{ArtifactsDir: "out"})
		compiled, err := repo.Load("DEPRPreSale")
		require.NoError(t, err)

		assert.Equal(t, models.ArtifactFormatFoundry, compiled.Artifact.Format)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40}, compiled.Bytecode)
		assert.Contains(t, compiled.ABI.Methods, "open")
	})

	t.Run("missing artifact", func(t *testing.T) {
		repo := newTestRepository(t, t.TempDir(), nil)
		_, err := repo.Load("DEPRToken")
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})

	t.Run("empty bytecode", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "build", "contracts", "IERC20.json"), `{"abi": [], "bytecode": "0x"}`)

		repo := newTestRepository(t, root, nil)
		_, err := repo.Load("IERC20")
		assert.ErrorIs(t, err, domain.ErrInvalidArtifact)
	})

	t.Run("unlinked library placeholder", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "build", "contracts", "Linked.json"),
			`{"abi": [], "bytecode": "0x6080__$1234567890abcdef1234567890abcdef12$__"}`)

		repo := newTestRepository(t, root, nil)
		_, err := repo.Load("Linked")
		assert.ErrorIs(t, err, domain.ErrInvalidArtifact)
	})
}

func TestRepositoryCandidates(t *testing.T) {
	repo := newTestRepository(t, "/project", &config.ProjectConfig{ArtifactsDir: "/abs/artifacts"})

	assert.Equal(t, []string{
		"/abs/artifacts/DEPRToken.json",
		"/abs/artifacts/DEPRToken.sol/DEPRToken.json",
		"/project/out/DEPRToken.sol/DEPRToken.json",
	}, repo.Candidates("DEPRToken"))
}
