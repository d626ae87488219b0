package common

import (
	"strings"
)

// ListFlags collects a repeatable string flag.
type ListFlags []string

func (l *ListFlags) Type() string {
	return "list"
}

func (l *ListFlags) String() string {
	return strings.Join(*l, " ")
}

func (l *ListFlags) Set(s string) error {
	*l = append(*l, s)
	return nil
}
