package models

import (
	"net/url"
	"strconv"
)

// ShopSearchParams mirrors the gourmet search query args. Use zero-values to omit.
type ShopSearchParams struct {
	Keyword string
	Budget  string // budget code, omitted entirely when empty
	Count   int
	Start   int    // 1-based offset
	Format  string // "json" (default)

	// Internet restricts results to shops accepting online reservations.
	Internet bool
}

func (p ShopSearchParams) ToValues() url.Values {
	q := url.Values{}

	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}
	if p.Budget != "" {
		q.Set("budget", p.Budget)
	}
	if p.Count > 0 {
		q.Set("count", strconv.Itoa(p.Count))
	}
	if p.Start > 0 {
		q.Set("start", strconv.Itoa(p.Start))
	}
	if p.Internet {
		q.Set("internet", "1")
	}

	format := p.Format
	if format == "" {
		format = "json"
	}
	q.Set("format", format)

	return q
}
