package api

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agoranet/agora/lib/common"
)

func TestPostProposalHandler(t *testing.T) {
	ts, st, lg, _, err := prepareAPIServer()
	require.NoError(t, err)
	defer st.Close()
	defer ts.Close()

	url := apiURL(ts, PostProposalHandlerPattern)

	{ // proposer without balance is rejected
		resp, err := postJSON(ts, url, []byte(`{"proposer": "alice", "document": "raise the fee"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	}

	require.NoError(t, lg.IssueSupply("alice", common.Amount(1000)))

	{
		resp, err := postJSON(ts, url, []byte(`{"proposer": "alice", "document": "raise the fee"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		body, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(body, &recv)

		require.Equal(t, float64(1), recv["id"])
		require.Equal(t, "alice", recv["proposer"])
		require.Equal(t, "open", recv["state"])
		// documents are stored by fingerprint
		require.Equal(t, common.MakeFingerprint([]byte("raise the fee")), recv["document"])
	}

	{ // missing document
		resp, err := postJSON(ts, url, []byte(`{"proposer": "alice"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	{ // slots fill up
		for i := 0; i < 2; i++ {
			resp, err := postJSON(ts, url, []byte(fmt.Sprintf(`{"proposer": "alice", "document": "doc %d"}`, i)))
			require.NoError(t, err)
			resp.Body.Close()
			require.Equal(t, http.StatusCreated, resp.StatusCode)
		}

		resp, err := postJSON(ts, url, []byte(`{"proposer": "alice", "document": "one too many"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	}
}

func TestGetProposalHandler(t *testing.T) {
	ts, st, lg, engine, err := prepareAPIServer()
	require.NoError(t, err)
	defer st.Close()
	defer ts.Close()

	require.NoError(t, lg.IssueSupply("alice", common.Amount(1000)))
	p, err := engine.CreateProposal("alice", "document", time.Now())
	require.NoError(t, err)

	{
		url := apiURL(ts, strings.Replace(GetProposalHandlerPattern, "{id}", fmt.Sprintf("%d", p.ID), -1))
		resp, err := ts.Client().Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(body, &recv)
		require.Equal(t, float64(p.ID), recv["id"])
		require.Equal(t, "0", recv["votes_for"])
	}

	{ // unknown id
		url := apiURL(ts, strings.Replace(GetProposalHandlerPattern, "{id}", "99", -1))
		resp, err := ts.Client().Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	{ // non-numeric id
		url := apiURL(ts, strings.Replace(GetProposalHandlerPattern, "{id}", "abc", -1))
		resp, err := ts.Client().Get(url)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}
}

func TestGetProposalsHandler(t *testing.T) {
	ts, st, lg, engine, err := prepareAPIServer()
	require.NoError(t, err)
	defer st.Close()
	defer ts.Close()

	require.NoError(t, lg.IssueSupply("alice", common.Amount(1000)))
	_, err = engine.CreateProposal("alice", "first", time.Now())
	require.NoError(t, err)
	_, err = engine.CreateProposal("alice", "second", time.Now())
	require.NoError(t, err)

	resp, err := ts.Client().Get(apiURL(ts, GetProposalsHandlerPattern))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	recv := make(map[string]interface{})
	common.MustUnmarshalJSON(body, &recv)

	slots := recv["slots"].([]interface{})
	require.Equal(t, []interface{}{float64(1), float64(2), float64(0)}, slots)

	records := recv["_embedded"].(map[string]interface{})["records"].([]interface{})
	require.Len(t, records, 2)
}

func TestPostVoteHandler(t *testing.T) {
	ts, st, lg, engine, err := prepareAPIServer()
	require.NoError(t, err)
	defer st.Close()
	defer ts.Close()

	require.NoError(t, lg.IssueSupply("alice", common.Amount(100)))
	require.NoError(t, lg.Transfer("alice", "bob", common.Amount(40), time.Now()))

	p, err := engine.CreateProposal("alice", "document", time.Now())
	require.NoError(t, err)

	url := apiURL(ts, strings.Replace(PostVoteHandlerPattern, "{id}", fmt.Sprintf("%d", p.ID), -1))

	{
		resp, err := postJSON(ts, url, []byte(`{"voter": "bob", "direction": "FOR", "amount": "40"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(body, &recv)
		require.Equal(t, "40", recv["votes_for"])
		require.Equal(t, "open", recv["state"])
	}

	{ // voting twice
		resp, err := postJSON(ts, url, []byte(`{"voter": "bob", "direction": "AGAINST", "amount": "10"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	}

	{ // more weight than balance
		resp, err := postJSON(ts, url, []byte(`{"voter": "alice", "direction": "FOR", "amount": "100"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	{ // bogus direction
		resp, err := postJSON(ts, url, []byte(`{"voter": "alice", "direction": "MAYBE", "amount": "10"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	}

	{ // unknown proposal
		unknown := apiURL(ts, strings.Replace(PostVoteHandlerPattern, "{id}", "99", -1))
		resp, err := postJSON(ts, unknown, []byte(`{"voter": "alice", "direction": "FOR", "amount": "10"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	}

	{ // crossing the majority threshold resolves the proposal
		resp, err := postJSON(ts, url, []byte(`{"voter": "alice", "direction": "FOR", "amount": "11"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)
		recv := make(map[string]interface{})
		common.MustUnmarshalJSON(body, &recv)
		require.Equal(t, "51", recv["votes_for"])
		require.Equal(t, "accepted", recv["state"])
	}
}
