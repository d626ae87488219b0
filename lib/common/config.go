package common

import (
	"time"
)

//
// Config carries the governance parameters and the non-consensus knobs of
// the API surface. One Config is built at startup and shared by the voting
// engine and the HTTP layer.
//
type Config struct {
	ProposalTTL       time.Duration
	ProposalsCapacity int

	// Those fields are not governance-related
	RateLimitRuleAPI RateLimitRule
}

func NewConfig() Config {
	p := Config{}

	p.ProposalTTL = ProposalTTL
	p.ProposalsCapacity = ProposalsCapacity

	p.RateLimitRuleAPI = NewRateLimitRule(RateLimitAPI)

	return p
}
