package accounts

import (
	"context"
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

// signTxArgs is the transaction object accepted by eth_signTransaction
type signTxArgs struct {
	From                 common.Address  `json:"from"`
	To                   *common.Address `json:"to,omitempty"`
	Gas                  hexutil.Uint64  `json:"gas"`
	GasPrice             *hexutil.Big    `json:"gasPrice,omitempty"`
	MaxFeePerGas         *hexutil.Big    `json:"maxFeePerGas,omitempty"`
	MaxPriorityFeePerGas *hexutil.Big    `json:"maxPriorityFeePerGas,omitempty"`
	Value                *hexutil.Big    `json:"value"`
	Nonce                hexutil.Uint64  `json:"nonce"`
	Data                 hexutil.Bytes   `json:"data"`
	ChainID              *hexutil.Big    `json:"chainId,omitempty"`
}

// signTxResult is geth's eth_signTransaction reply. Some nodes reply with the
// raw transaction as a bare hex string instead.
type signTxResult struct {
	Raw hexutil.Bytes `json:"raw"`
}

// NodeSigner returns a signer that has the node sign with an account it
// manages, the way truffle signs against an unlocked ganache or geth node.
func NodeSigner(ctx context.Context, client *rpc.Client, from common.Address, chainID *big.Int) bind.SignerFn {
	return func(addr common.Address, tx *types.Transaction) (*types.Transaction, error) {
		if addr != from {
			return nil, bind.ErrNotAuthorized
		}

		args := signTxArgs{
			From:    from,
			To:      tx.To(),
			Gas:     hexutil.Uint64(tx.Gas()),
			Value:   (*hexutil.Big)(tx.Value()),
			Nonce:   hexutil.Uint64(tx.Nonce()),
			Data:    tx.Data(),
			ChainID: (*hexutil.Big)(chainID),
		}
		if tx.Type() == types.DynamicFeeTxType {
			args.MaxFeePerGas = (*hexutil.Big)(tx.GasFeeCap())
			args.MaxPriorityFeePerGas = (*hexutil.Big)(tx.GasTipCap())
		} else {
			args.GasPrice = (*hexutil.Big)(tx.GasPrice())
		}

		var reply json.RawMessage
		if err := client.CallContext(ctx, &reply, "eth_signTransaction", args); err != nil {
			return nil, Error.New("eth_signTransaction: %v", err)
		}

		raw, err := decodeSignReply(reply)
		if err != nil {
			return nil, err
		}

		signed := new(types.Transaction)
		if err := signed.UnmarshalBinary(raw); err != nil {
			return nil, Error.New("decode signed transaction: %v", err)
		}

		sender, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
		if err != nil {
			return nil, Error.Wrap(err)
		}
		if sender != from {
			return nil, Error.New("node signed as %s, expected %s", sender.Hex(), from.Hex())
		}
		return signed, nil
	}
}

func decodeSignReply(reply json.RawMessage) ([]byte, error) {
	var asString hexutil.Bytes
	if err := json.Unmarshal(reply, &asString); err == nil {
		return asString, nil
	}

	var result signTxResult
	if err := json.Unmarshal(reply, &result); err != nil {
		return nil, Error.New("unexpected eth_signTransaction reply: %s", string(reply))
	}
	if len(result.Raw) == 0 {
		return nil, Error.New("eth_signTransaction returned no raw transaction")
	}
	return result.Raw, nil
}
