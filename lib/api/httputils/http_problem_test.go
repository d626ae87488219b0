package httputils

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/errors"
)

func TestProblem(t *testing.T) {
	router := mux.NewRouter()

	statusProblem := NewStatusProblem(http.StatusBadRequest)
	detailedStatusProblem := NewDetailedStatusProblem(http.StatusBadRequest, "parameters are not enough")
	errorProblem := NewErrorProblem(errors.AlreadyVoted, StatusCode(errors.AlreadyVoted))

	router.HandleFunc("/problem_status_default", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusBadRequest, statusProblem)
	})
	router.HandleFunc("/problem_status_with_detail", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusBadRequest, detailedStatusProblem)
	})
	router.HandleFunc("/problem_with_error", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, StatusCode(errors.AlreadyVoted), errorProblem)
	})
	router.HandleFunc("/problem_from_raw_error", func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, errors.ProposalExpired)
	})

	ts := httptest.NewServer(router)
	defer ts.Close()

	{
		resp, err := http.Get(ts.URL + "/problem_status_default")
		require.NoError(t, err)
		defer resp.Body.Close()

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var m map[string]interface{}
		common.MustUnmarshalJSON(readByte, &m)
		require.Equal(t, "about:blank", m["type"])
		require.Equal(t, http.StatusText(http.StatusBadRequest), m["title"])
		require.Equal(t, float64(http.StatusBadRequest), m["status"])
		require.Empty(t, m["detail"])
		require.Empty(t, m["instance"])
	}

	{
		resp, err := http.Get(ts.URL + "/problem_status_with_detail")
		require.NoError(t, err)
		defer resp.Body.Close()

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var m map[string]interface{}
		common.MustUnmarshalJSON(readByte, &m)
		require.Equal(t, "parameters are not enough", m["detail"])
	}

	{
		resp, err := http.Get(ts.URL + "/problem_with_error")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)

		readByte, err := ioutil.ReadAll(resp.Body)
		require.NoError(t, err)

		var m map[string]interface{}
		common.MustUnmarshalJSON(readByte, &m)
		require.Equal(t, errors.AlreadyVoted.Message, m["title"])
		require.Contains(t, m["type"], "/problems/106")
	}

	{
		resp, err := http.Get(ts.URL + "/problem_from_raw_error")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusGone, resp.StatusCode)
		require.Equal(t, "application/problem+json", resp.Header.Get("Content-Type"))
	}
}

func TestStatusCode(t *testing.T) {
	require.Equal(t, http.StatusForbidden, StatusCode(errors.Unauthorized))
	require.Equal(t, http.StatusConflict, StatusCode(errors.NoCapacity))
	require.Equal(t, http.StatusNotFound, StatusCode(errors.NotFound))
	require.Equal(t, http.StatusGone, StatusCode(errors.ProposalExpired))
	require.Equal(t, http.StatusInternalServerError, StatusCode(errors.StorageCoreError))
}
