package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"github.com/agoranet/agora/lib/common"
	"github.com/agoranet/agora/lib/ledger"
)

type Account struct {
	a *ledger.Account
}

func NewAccount(a *ledger.Account) *Account {
	return &Account{
		a: a,
	}
}

func (a Account) GetMap() hal.Entry {
	return hal.Entry{
		"address": a.a.Address,
		"balance": a.a.Balance.String(),
	}
}

func (a Account) Resource() *hal.Resource {
	r := hal.NewResource(a, a.LinkSelf())
	r.AddLink("proposals", hal.NewLink(URLProposals))
	return r
}

func (a Account) LinkSelf() string {
	return strings.Replace(URLAccountByID, "{id}", a.a.Address, -1)
}

func (a Account) MarshalJSON() ([]byte, error) {
	r := a.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}
