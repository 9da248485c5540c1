package deployments

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/degenpro/depr-deploy/internal/domain"
	"github.com/degenpro/depr-deploy/internal/domain/config"
	"github.com/degenpro/depr-deploy/internal/domain/models"
	"github.com/degenpro/depr-deploy/internal/usecase"
)

const (
	DeploymentsFile  = "deployments.json"
	TransactionsFile = "transactions.json"
	AddressBookFile  = "addresses.json"
)

// AddressBook maps chain id to contract name to the latest deployed address
type AddressBook map[uint64]map[string]string

// FileRepository stores the deployments in json files on the system
type FileRepository struct {
	dataDir      string
	mu           sync.RWMutex
	deployments  map[string]*models.Deployment
	transactions map[string]*models.Transaction
	addresses    AddressBook
}

// NewFileRepository creates a repository rooted at the data directory
func NewFileRepository(dataDir string) (*FileRepository, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", dataDir, err)
	}

	m := &FileRepository{
		dataDir:      dataDir,
		deployments:  make(map[string]*models.Deployment),
		transactions: make(map[string]*models.Transaction),
		addresses:    make(AddressBook),
	}

	if err := m.load(); err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	return m, nil
}

// NewFileRepositoryFromConfig creates a new FileRepository from RuntimeConfig
func NewFileRepositoryFromConfig(cfg *config.RuntimeConfig) (*FileRepository, error) {
	return NewFileRepository(cfg.DataDir)
}

func (m *FileRepository) load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.loadFile(DeploymentsFile, &m.deployments); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load deployments: %w", err)
	}
	if err := m.loadFile(TransactionsFile, &m.transactions); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	// A file holding "null" decodes to a nil map
	if m.deployments == nil {
		m.deployments = make(map[string]*models.Deployment)
	}
	if m.transactions == nil {
		m.transactions = make(map[string]*models.Transaction)
	}

	m.rebuildAddressBook()
	return nil
}

func (m *FileRepository) loadFile(filename string, v any) error {
	data, err := os.ReadFile(filepath.Join(m.dataDir, filename))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (m *FileRepository) save() error {
	if err := m.saveFile(DeploymentsFile, m.deployments); err != nil {
		return fmt.Errorf("failed to save deployments: %w", err)
	}
	if err := m.saveFile(TransactionsFile, m.transactions); err != nil {
		return fmt.Errorf("failed to save transactions: %w", err)
	}
	if err := m.saveFile(AddressBookFile, m.addresses); err != nil {
		return fmt.Errorf("failed to save address book: %w", err)
	}
	return nil
}

// saveFile writes through a temp file so a crash never leaves half a registry
func (m *FileRepository) saveFile(filename string, v any) error {
	path := filepath.Join(m.dataDir, filename)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

func (m *FileRepository) rebuildAddressBook() {
	m.addresses = make(AddressBook)
	for _, dep := range m.deployments {
		if m.addresses[dep.ChainID] == nil {
			m.addresses[dep.ChainID] = make(map[string]string)
		}
		m.addresses[dep.ChainID][dep.ContractName] = dep.Address
	}
}

// GetDeployment retrieves a deployment by ID
func (m *FileRepository) GetDeployment(ctx context.Context, id string) (*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dep, exists := m.deployments[id]
	if !exists {
		return nil, domain.ErrNotFound
	}
	clone := *dep
	return &clone, nil
}

// Addresses returns a copy of the address book
func (m *FileRepository) Addresses() AddressBook {
	m.mu.RLock()
	defer m.mu.RUnlock()

	book := make(AddressBook, len(m.addresses))
	for chainID, contracts := range m.addresses {
		book[chainID] = make(map[string]string, len(contracts))
		for name, addr := range contracts {
			book[chainID][name] = addr
		}
	}
	return book
}

// ListDeployments retrieves deployments matching the filter
func (m *FileRepository) ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []*models.Deployment{}
	for _, dep := range m.deployments {
		if filter.Network != "" && dep.Network != filter.Network {
			continue
		}
		if filter.ChainID != 0 && dep.ChainID != filter.ChainID {
			continue
		}
		if filter.ContractName != "" && dep.ContractName != filter.ContractName {
			continue
		}

		clone := *dep
		result = append(result, &clone)
	}

	return result, nil
}

// ListTransactions lists transactions based on filter criteria
func (m *FileRepository) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]*models.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []*models.Transaction{}
	for _, tx := range m.transactions {
		if filter.Network != "" && tx.Network != filter.Network {
			continue
		}
		if filter.ChainID != 0 && tx.ChainID != filter.ChainID {
			continue
		}

		clone := *tx
		result = append(result, &clone)
	}

	return result, nil
}

// SaveDeployment saves a deployment, replacing any earlier one with the same ID
func (m *FileRepository) SaveDeployment(ctx context.Context, deployment *models.Deployment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if deployment.ID == "" {
		deployment.ID = models.DeploymentID(deployment.ChainID, deployment.ContractName)
	}
	if deployment.CreatedAt.IsZero() {
		deployment.CreatedAt = time.Now()
	}

	m.deployments[deployment.ID] = deployment
	m.rebuildAddressBook()

	return m.save()
}

// SaveTransaction saves a post-deploy transaction keyed by its hash
func (m *FileRepository) SaveTransaction(ctx context.Context, tx *models.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if tx.Hash == "" {
		return fmt.Errorf("transaction has no hash")
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now()
	}

	m.transactions[tx.Hash] = tx
	return m.save()
}

var _ usecase.DeploymentRepository = (*FileRepository)(nil)
