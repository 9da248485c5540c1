package blockchain

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// fakeNode is an in-memory JSON-RPC node that mines every raw transaction
// into its own block
type fakeNode struct {
	t       *testing.T
	chainID *big.Int

	mu       sync.Mutex
	block    uint64
	nonces   map[common.Address]uint64
	sent     []*types.Transaction
	receipts map[common.Hash]*types.Receipt
	code     map[common.Address][]byte
	revert   map[int]bool // index of sent transactions that fail
	balances map[common.Address]*big.Int
}

func newFakeNode(t *testing.T, chainID int64) (*fakeNode, string) {
	t.Helper()
	node := &fakeNode{
		t:        t,
		chainID:  big.NewInt(chainID),
		block:    100,
		nonces:   make(map[common.Address]uint64),
		receipts: make(map[common.Hash]*types.Receipt),
		code:     make(map[common.Address][]byte),
		revert:   make(map[int]bool),
		balances: make(map[common.Address]*big.Int),
	}
	server := httptest.NewServer(http.HandlerFunc(node.serve))
	t.Cleanup(server.Close)
	return node, server.URL
}

func (n *fakeNode) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage   `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	if result, err := n.handle(req.Method, req.Params); err != nil {
		resp["error"] = map[string]any{"code": -32000, "message": err.Error()}
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func (n *fakeNode) handle(method string, params []json.RawMessage) (any, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch method {
	case "eth_chainId":
		return (*hexutil.Big)(n.chainID), nil
	case "eth_blockNumber":
		return hexutil.Uint64(n.block), nil
	case "eth_getTransactionCount":
		var addr common.Address
		if err := json.Unmarshal(params[0], &addr); err != nil {
			return nil, err
		}
		return hexutil.Uint64(n.nonces[addr]), nil
	case "eth_getBalance":
		var addr common.Address
		if err := json.Unmarshal(params[0], &addr); err != nil {
			return nil, err
		}
		balance, ok := n.balances[addr]
		if !ok {
			balance = new(big.Int)
		}
		return (*hexutil.Big)(balance), nil
	case "eth_sendRawTransaction":
		var raw hexutil.Bytes
		if err := json.Unmarshal(params[0], &raw); err != nil {
			return nil, err
		}
		tx := new(types.Transaction)
		if err := tx.UnmarshalBinary(raw); err != nil {
			return nil, err
		}
		return tx.Hash(), n.mine(tx)
	case "eth_getTransactionReceipt":
		var hash common.Hash
		if err := json.Unmarshal(params[0], &hash); err != nil {
			return nil, err
		}
		receipt, ok := n.receipts[hash]
		if !ok {
			return nil, nil
		}
		return receipt, nil
	case "eth_getCode":
		var addr common.Address
		if err := json.Unmarshal(params[0], &addr); err != nil {
			return nil, err
		}
		return hexutil.Bytes(n.code[addr]), nil
	default:
		return nil, fmt.Errorf("method not supported: %s", method)
	}
}

func (n *fakeNode) mine(tx *types.Transaction) error {
	from, err := types.Sender(types.LatestSignerForChainID(n.chainID), tx)
	if err != nil {
		return err
	}
	if tx.Nonce() != n.nonces[from] {
		return fmt.Errorf("nonce too low")
	}

	index := len(n.sent)
	n.sent = append(n.sent, tx)
	n.nonces[from]++
	n.block++

	receipt := &types.Receipt{
		Type:              tx.Type(),
		Status:            types.ReceiptStatusSuccessful,
		CumulativeGasUsed: 21000,
		Logs:              []*types.Log{},
		TxHash:            tx.Hash(),
		GasUsed:           21000,
		BlockHash:         common.BigToHash(new(big.Int).SetUint64(n.block)),
		BlockNumber:       new(big.Int).SetUint64(n.block),
	}
	if n.revert[index] {
		receipt.Status = types.ReceiptStatusFailed
	}
	if tx.To() == nil {
		receipt.ContractAddress = crypto.CreateAddress(from, tx.Nonce())
		if receipt.Status == types.ReceiptStatusSuccessful {
			n.code[receipt.ContractAddress] = []byte{0x60, 0x80}
		}
	}
	n.receipts[tx.Hash()] = receipt
	return nil
}

func (n *fakeNode) transactions() []*types.Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*types.Transaction(nil), n.sent...)
}
