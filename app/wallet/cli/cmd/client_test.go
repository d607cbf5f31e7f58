package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sanikak2004/builder-quantum-den-sub002/business/web/errs"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Call(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/v1/ledger/stats":
			json.NewEncoder(w).Encode(stats{TotalBlocks: 3, NetworkHashRate: "1 kH/s"})
		default:
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(errs.Response{Error: "nothing to mine"})
		}
	}))
	defer srv.Close()

	url = srv.URL

	t.Log("Given the need to talk to the node API.")
	{
		var s stats
		if err := call(http.MethodGet, "/ledger/stats", nil, &s); err != nil {
			t.Fatalf("\t%s\tShould be able to decode the stats: %v", failed, err)
		}
		if s.TotalBlocks != 3 || s.NetworkHashRate != "1 kH/s" {
			t.Fatalf("\t%s\tShould get the served stats: %+v", failed, s)
		}
		t.Logf("\t%s\tShould be able to decode the stats.", success)

		err := call(http.MethodPost, "/ledger/mine", struct{}{}, nil)
		if err == nil || !strings.Contains(err.Error(), "nothing to mine") {
			t.Fatalf("\t%s\tShould surface the node error: %v", failed, err)
		}
		t.Logf("\t%s\tShould surface the node error.", success)
	}
}
