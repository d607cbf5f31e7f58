package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sanikak2004/builder-quantum-den-sub002/business/web/errs"
	"github.com/shopspring/decimal"
)

type tx struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
	Data      string          `json:"data"`
	TimeStamp uint64          `json:"timestamp"`
	Signature string          `json:"signature"`
}

type submitTx struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
	Data      string          `json:"data"`
	TimeStamp uint64          `json:"timestamp"`
	Signature string          `json:"signature"`
}

type block struct {
	Index        uint64 `json:"index"`
	Hash         string `json:"hash"`
	PreviousHash string `json:"previousHash"`
	TimeStamp    uint64 `json:"timestamp"`
	Nonce        uint64 `json:"nonce"`
	MerkleRoot   string `json:"merkleRoot"`
	Validator    string `json:"validator"`
	Difficulty   uint   `json:"difficulty"`
	GasUsed      uint64 `json:"gasUsed"`
	GasLimit     uint64 `json:"gasLimit"`
	Transactions []tx   `json:"transactions"`
}

type stats struct {
	TotalBlocks         int             `json:"totalBlocks"`
	TotalTransactions   int             `json:"totalTransactions"`
	PendingTransactions int             `json:"pendingTransactions"`
	TotalSupply         decimal.Decimal `json:"totalSupply"`
	Difficulty          uint            `json:"difficulty"`
	MiningReward        decimal.Decimal `json:"miningReward"`
	AverageBlockTime    float64         `json:"averageBlockTime"`
	NetworkHashRate     string          `json:"networkHashRate"`
	UniqueAddresses     int             `json:"uniqueAddresses"`
	LatestBlockHash     string          `json:"latestBlockHash"`
	IsValid             bool            `json:"isValid"`
	IsMining            bool            `json:"isMining"`
}

type violation struct {
	Index  uint64 `json:"index"`
	Kind   string `json:"kind"`
	Detail string `json:"detail"`
}

type validation struct {
	IsValid        bool       `json:"isValid"`
	FirstViolation *violation `json:"firstViolation"`
}

type proof struct {
	Tx          tx       `json:"transaction"`
	BlockNumber uint64   `json:"blockIndex"`
	BlockHash   string   `json:"blockHash"`
	MerkleRoot  string   `json:"merkleRoot"`
	Hashes      []string `json:"hashes"`
	Order       []int64  `json:"order"`
}

// =============================================================================

var client = http.Client{
	Timeout: 2 * time.Minute,
}

// call performs the request against the node and decodes the response into
// out. Error responses are returned with the message the node provided.
func call(method string, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url+"/v1"+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var er errs.Response
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
			return fmt.Errorf("node returned %s", resp.Status)
		}

		msg := er.Error
		for field, fe := range er.Fields {
			msg += fmt.Sprintf(", %s: %s", field, fe)
		}
		return errors.New(msg)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
