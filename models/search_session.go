package models

import (
	"time"

	"reserve-assistant/models/shop"
)

const (
	OutcomeOK        = "ok"
	OutcomeNoResults = "no_results"
)

// SearchSession carries search state across a user's "new search" and
// "next page" actions. It is owned by one user and never shared between
// concurrent requests.
type SearchSession struct {
	ID      string        `json:"id"`
	Request SearchRequest `json:"request"`

	// Start is the directory offset the next page will be fetched from.
	Start int `json:"start"`

	Outcome string              `json:"outcome"`
	Results []shop.EnrichedShop `json:"results"`

	// PagesFetched counts directory pages consumed by the last run.
	PagesFetched int `json:"pages_fetched"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a copy that can be mutated without touching the original.
func (s *SearchSession) Clone() *SearchSession {
	c := *s
	c.Request.BudgetCodes = append([]string(nil), s.Request.BudgetCodes...)
	c.Results = append([]shop.EnrichedShop(nil), s.Results...)
	return &c
}
