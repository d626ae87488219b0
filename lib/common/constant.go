package common

import "time"

const (
	// ProposalTTL is how long an unresolved proposal stays open for voting.
	ProposalTTL time.Duration = 259200 * time.Second // 3 days

	// ProposalsCapacity is the number of active proposal slots; proposals
	// beyond this bound must wait for a slot to expire or resolve.
	ProposalsCapacity int = 3
)
