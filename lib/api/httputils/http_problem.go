package httputils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/agoranet/agora/lib/errors"
)

// Problem follows RFC7807( https://tools.ietf.org/html/rfc7807 )
type Problem struct {
	// "type" (string) - A URI reference [RFC3986] that identifies the
	// problem type.  When this member is not present, its value is
	// assumed to be "about:blank".
	Type string `json:"type"`

	// "title" (string) - A short, human-readable summary of the problem
	// type.  It SHOULD NOT change from occurrence to occurrence of the
	// problem.
	Title string `json:"title"`

	// "status" (number) - The HTTP status code ([RFC7231], Section 6)
	// generated by the origin server for this occurrence of the problem.
	Status int `json:"status,omitempty"`

	// "detail" (string) - A human-readable explanation specific to this
	// occurrence of the problem.
	Detail string `json:"detail,omitempty"`

	// "instance" (string) - A URI reference that identifies the specific
	// occurrence of the problem.
	Instance string `json:"instance,omitempty"`
}

func NewStatusProblem(status int) Problem {
	return Problem{Type: "about:blank", Status: status, Title: http.StatusText(status)}
}

func NewDetailedStatusProblem(status int, detail string) Problem {
	p := NewStatusProblem(status)
	p.Detail = detail
	return p
}

// NewErrorProblem makes a Problem from an error. Coded errors carry their
// code in the problem type URI so clients can distinguish failures that map
// to the same HTTP status.
func NewErrorProblem(err error, status int) Problem {
	p := NewStatusProblem(status)
	p.Title = err.Error()
	if e, ok := err.(*errors.Error); ok {
		p.Type = fmt.Sprintf("https://github.com/agoranet/agora/problems/%d", e.Code)
		p.Title = e.Message
	}
	return p
}

func (p Problem) SetInstance(instance string) Problem {
	p.Instance = instance
	return p
}

func (p Problem) SetDetail(detail string) Problem {
	p.Detail = detail
	return p
}

func (p Problem) Serialize() ([]byte, error) {
	return json.Marshal(p)
}
