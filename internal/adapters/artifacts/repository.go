package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/degenpro/depr-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Repository loads compiled contract artifacts from disk
type Repository struct {
	projectRoot  string
	artifactsDir string
	log          *slog.Logger
	mu           sync.Mutex
	loaded       map[string]*models.CompiledContract
}

// NewRepository creates a new artifact repository for the project
func NewRepository(cfg *config.RuntimeConfig, log *slog.Logger) *Repository {
	artifactsDir := config.DefaultArtifactsDir
	if cfg.Project != nil && cfg.Project.ArtifactsDir != "" {
		artifactsDir = cfg.Project.ArtifactsDir
	}
	if !filepath.IsAbs(artifactsDir) {
		artifactsDir = filepath.Join(cfg.ProjectRoot, artifactsDir)
	}

	return &Repository{
		projectRoot:  cfg.ProjectRoot,
		artifactsDir: artifactsDir,
		log:          log,
		loaded:       make(map[string]*models.CompiledContract),
	}
}

// Candidates returns the paths searched for a contract, in order
func (r *Repository) Candidates(name string) []string {
	file := name + ".json"
	return []string{
		// truffle: build/contracts/<Name>.json
		filepath.Join(r.artifactsDir, file),
		// forge: out/<Name>.sol/<Name>.json
		filepath.Join(r.artifactsDir, name+".sol", file),
		filepath.Join(r.projectRoot, "out", name+".sol", file),
	}
}

// Load returns the compiled contract for a name, reading it on first use
func (r *Repository) Load(name string) (*models.CompiledContract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if compiled, ok := r.loaded[name]; ok {
		return compiled, nil
	}

	for _, path := range r.Candidates(name) {
		if _, err := os.Stat(path); err != nil {
			continue
		}

		compiled, err := loadArtifact(name, path)
		if err != nil {
			return nil, err
		}

		r.log.Debug("loaded artifact", "contract", name, "path", path, "format", compiled.Artifact.Format)
		r.loaded[name] = compiled
		return compiled, nil
	}

	return nil, fmt.Errorf("%w: %s (searched %s)", domain.ErrArtifactNotFound, name, r.artifactsDir)
}

// loadArtifact reads and validates a single artifact file
func loadArtifact(name, path string) (*models.CompiledContract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact %s: %w", path, err)
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidArtifact, path, err)
	}
	artifact.Path = path
	artifact.Format = detectFormat(data)

	if len(artifact.ABI) == 0 {
		return nil, fmt.Errorf("%w: %s has no abi", domain.ErrInvalidArtifact, name)
	}

	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return nil, fmt.Errorf("%w: %s abi: %v", domain.ErrInvalidArtifact, name, err)
	}

	bytecode, err := artifact.Bytecode.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: %s bytecode (unlinked libraries?): %v", domain.ErrInvalidArtifact, name, err)
	}
	if len(bytecode) == 0 {
		return nil, fmt.Errorf("%w: %s has no bytecode (abstract contract or interface?)", domain.ErrInvalidArtifact, name)
	}

	return &models.CompiledContract{
		Name:     name,
		Artifact: &artifact,
		ABI:      parsed,
		Bytecode: bytecode,
	}, nil
}

// detectFormat tells truffle artifacts (bytecode is a string) from forge
// artifacts (bytecode is an object)
func detectFormat(data []byte) models.ArtifactFormat {
	var probe struct {
		Bytecode json.RawMessage `json:"bytecode"`
	}
	if err := json.Unmarshal(data, &probe); err == nil {
		trimmed := bytes.TrimSpace(probe.Bytecode)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			return models.ArtifactFormatFoundry
		}
	}
	return models.ArtifactFormatTruffle
}
