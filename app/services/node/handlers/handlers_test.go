package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/sanikak2004/builder-quantum-den-sub002/app/services/node/handlers"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/genesis"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/state"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/blockchain/storage/memory"
	"github.com/sanikak2004/builder-quantum-den-sub002/foundation/events"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func newMux(t *testing.T) http.Handler {
	t.Helper()

	g := genesis.Default()
	g.Difficulty = 1

	st, err := state.New(state.Config{
		MinerAddress:   "miner1",
		Genesis:        g,
		Storage:        memory.New(),
		SelectStrategy: "fee",
	})
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct the state: %v", failed, err)
	}
	t.Cleanup(func() { st.Shutdown() })

	return handlers.PublicMux(handlers.MuxConfig{
		Shutdown: make(chan os.Signal, 1),
		Log:      zap.NewNop().Sugar(),
		State:    st,
		Evts:     events.New(),
	})
}

func do(mux http.Handler, method string, path string, body string) *httptest.ResponseRecorder {
	var r *http.Request
	switch body {
	case "":
		r = httptest.NewRequest(method, path, nil)
	default:
		r = httptest.NewRequest(method, path, strings.NewReader(body))
	}

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	return w
}

// =============================================================================

func Test_SubmitAndMine(t *testing.T) {
	mux := newMux(t)

	const txA = `{"from":"alice","to":"kyc-registry","amount":"1","fee":"5","data":"kyc:alice","timestamp":1700000000000,"signature":"sig-a"}`

	t.Log("Given the need to submit a transaction and mine it over http.")
	{
		w := do(mux, http.MethodPost, "/v1/ledger/tx/submit", txA)
		if w.Code != http.StatusCreated {
			t.Fatalf("\t%s\tShould receive a 201 for the submission: got %d: %s", failed, w.Code, w.Body)
		}
		t.Logf("\t%s\tShould receive a 201 for the submission.", success)

		var submitted struct {
			ID string `json:"id"`
		}
		if err := json.NewDecoder(w.Body).Decode(&submitted); err != nil || submitted.ID == "" {
			t.Fatalf("\t%s\tShould receive the transaction id: %v", failed, err)
		}
		t.Logf("\t%s\tShould receive the transaction id.", success)

		if w := do(mux, http.MethodPost, "/v1/ledger/tx/submit", txA); w.Code != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould reject the duplicate with a 400: got %d", failed, w.Code)
		}
		t.Logf("\t%s\tShould reject the duplicate with a 400.", success)

		w = do(mux, http.MethodGet, "/v1/ledger/tx/pending", "")
		var pending []map[string]any
		if err := json.NewDecoder(w.Body).Decode(&pending); err != nil || len(pending) != 1 {
			t.Fatalf("\t%s\tShould list 1 pending transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould list 1 pending transaction.", success)

		w = do(mux, http.MethodPost, "/v1/ledger/mine", "")
		if w.Code != http.StatusCreated {
			t.Fatalf("\t%s\tShould receive a 201 for mining: got %d: %s", failed, w.Code, w.Body)
		}
		t.Logf("\t%s\tShould receive a 201 for mining.", success)

		var blk struct {
			Index        uint64           `json:"index"`
			Validator    string           `json:"validator"`
			Transactions []map[string]any `json:"transactions"`
		}
		if err := json.NewDecoder(w.Body).Decode(&blk); err != nil {
			t.Fatalf("\t%s\tShould decode the block: %v", failed, err)
		}
		if blk.Index != 1 || blk.Validator != "miner1" || len(blk.Transactions) != 2 {
			t.Fatalf("\t%s\tShould mine block 1 with the tx and reward: got %+v", failed, blk)
		}
		t.Logf("\t%s\tShould mine block 1 with the tx and reward.", success)

		if w := do(mux, http.MethodPost, "/v1/ledger/mine", `{"minerAddress":"miner2"}`); w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("\t%s\tShould receive a 422 with nothing to mine: got %d", failed, w.Code)
		}
		t.Logf("\t%s\tShould receive a 422 with nothing to mine.", success)

		w = do(mux, http.MethodGet, "/v1/ledger/tx/"+submitted.ID+"/proof", "")
		if w.Code != http.StatusOK {
			t.Fatalf("\t%s\tShould receive the merkle proof: got %d: %s", failed, w.Code, w.Body)
		}
		t.Logf("\t%s\tShould receive the merkle proof.", success)
	}
}

func Test_Queries(t *testing.T) {
	mux := newMux(t)

	t.Log("Given the need to query the ledger over http.")
	{
		w := do(mux, http.MethodGet, "/v1/ledger/blocks", "")
		var blocks []map[string]any
		if err := json.NewDecoder(w.Body).Decode(&blocks); err != nil || len(blocks) != 1 {
			t.Fatalf("\t%s\tShould list the genesis block: %v", failed, err)
		}
		t.Logf("\t%s\tShould list the genesis block.", success)

		if w := do(mux, http.MethodGet, "/v1/ledger/blocks/0", ""); w.Code != http.StatusOK {
			t.Fatalf("\t%s\tShould get block 0: got %d", failed, w.Code)
		}
		t.Logf("\t%s\tShould get block 0.", success)

		if w := do(mux, http.MethodGet, "/v1/ledger/blocks/9", ""); w.Code != http.StatusNotFound {
			t.Fatalf("\t%s\tShould get a 404 for a missing block: got %d", failed, w.Code)
		}
		t.Logf("\t%s\tShould get a 404 for a missing block.", success)

		if w := do(mux, http.MethodGet, "/v1/ledger/blocks/abc", ""); w.Code != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould get a 400 for a bad block number: got %d", failed, w.Code)
		}
		t.Logf("\t%s\tShould get a 400 for a bad block number.", success)

		w = do(mux, http.MethodGet, "/v1/ledger/validate", "")
		var v struct {
			IsValid bool `json:"isValid"`
		}
		if err := json.NewDecoder(w.Body).Decode(&v); err != nil || !v.IsValid {
			t.Fatalf("\t%s\tShould report a valid chain: %v", failed, err)
		}
		t.Logf("\t%s\tShould report a valid chain.", success)

		w = do(mux, http.MethodGet, "/v1/ledger/stats", "")
		var s struct {
			TotalBlocks     int    `json:"totalBlocks"`
			NetworkHashRate string `json:"networkHashRate"`
			IsValid         bool   `json:"isValid"`
		}
		if err := json.NewDecoder(w.Body).Decode(&s); err != nil {
			t.Fatalf("\t%s\tShould decode the stats: %v", failed, err)
		}
		if s.TotalBlocks != 1 || s.NetworkHashRate != "0 H/s" || !s.IsValid {
			t.Fatalf("\t%s\tShould report the fresh chain stats: got %+v", failed, s)
		}
		t.Logf("\t%s\tShould report the fresh chain stats.", success)
	}
}

func Test_BadRequests(t *testing.T) {
	mux := newMux(t)

	t.Log("Given the need to reject malformed submissions.")
	{
		w := do(mux, http.MethodPost, "/v1/ledger/tx/submit", `{"from":"alice","to":"bob","amount":"1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould get a 400 for a missing signature: got %d", failed, w.Code)
		}
		t.Logf("\t%s\tShould get a 400 for a missing signature.", success)

		var resp struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || resp.Fields["signature"] == "" {
			t.Fatalf("\t%s\tShould name the signature field: %v %+v", failed, err, resp)
		}
		t.Logf("\t%s\tShould name the signature field.", success)

		w = do(mux, http.MethodPost, "/v1/ledger/tx/submit", `{"from":"alice","to":"bob","amount":"-1","signature":"s"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould get a 400 for a negative amount: got %d", failed, w.Code)
		}
		t.Logf("\t%s\tShould get a 400 for a negative amount.", success)

		w = do(mux, http.MethodPost, "/v1/ledger/tx/submit", `{not json`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("\t%s\tShould get a 400 for a broken payload: got %d", failed, w.Code)
		}
		t.Logf("\t%s\tShould get a 400 for a broken payload.", success)
	}
}
