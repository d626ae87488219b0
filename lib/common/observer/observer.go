package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

var AccountObserver = observable.New()
var ProposalObserver = observable.New()
