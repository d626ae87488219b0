package httputils

import (
	"net/http"

	"github.com/agoranet/agora/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "text/event-stream" {
		return true
	}
	return false
}

var ErrorsToStatus = map[uint]int{
	errors.Unauthorized.Code:        http.StatusForbidden,
	errors.NoCapacity.Code:          http.StatusConflict,
	errors.InvalidAmount.Code:       http.StatusBadRequest,
	errors.InsufficientBalance.Code: http.StatusBadRequest,
	errors.NotFound.Code:            http.StatusNotFound,
	errors.ProposalExpired.Code:     http.StatusGone,
	errors.AlreadyVoted.Code:        http.StatusConflict,
	errors.InvalidDirection.Code:    http.StatusBadRequest,

	errors.AccountNotFound.Code:         http.StatusNotFound,
	errors.AccountAlreadyExists.Code:    http.StatusConflict,
	errors.AccountBalanceUnderZero.Code: http.StatusBadRequest,
	errors.MaximumBalanceReached.Code:   http.StatusBadRequest,
	errors.SupplyAlreadyIssued.Code:     http.StatusConflict,
	errors.SupplyNotIssued.Code:         http.StatusServiceUnavailable,
}

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, ok := ErrorsToStatus[e.Code]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}
