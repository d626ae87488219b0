package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/agoranet/agora/lib/api/resource"
	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/governance"
	"github.com/agoranet/agora/lib/ledger"
	"github.com/agoranet/agora/lib/storage"
)

func prepareAPIServer() (*httptest.Server, *storage.LevelDBBackend, *ledger.Ledger, *governance.VotingEngine, error) {
	st, err := storage.NewTestMemoryLevelDBBackend()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	mtx := &sync.Mutex{}
	lg := ledger.NewLedger(st, mtx)

	engine, err := governance.NewVotingEngine(st, lg, common.NewConfig(), mtx)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	lg.SetTransferHandler(engine.BalanceChanged)

	apiHandler := NewNetworkHandlerAPI(lg, engine, st)
	ts := httptest.NewServer(apiHandler.Handler(common.NewConfig()))

	return ts, st, lg, engine, nil
}

func apiURL(ts *httptest.Server, pattern string) string {
	return ts.URL + resource.APIPrefix + resource.APIVersionV1 + pattern
}

func postJSON(ts *httptest.Server, url string, body []byte) (*http.Response, error) {
	return ts.Client().Post(url, "application/json", bytes.NewReader(body))
}
