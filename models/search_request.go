package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// JST is the zone target dates and times are interpreted in.
var JST = time.FixedZone("JST", 9*60*60)

// SearchRequest is what the presentation layer submits for a new search.
// It is not changed once a session has been created from it.
type SearchRequest struct {
	Prefecture  string   `json:"prefecture" validate:"required"`
	Area        string   `json:"area"`
	Genre       string   `json:"genre"`
	PartySize   int      `json:"party_size" validate:"min=1,max=1000"`
	BudgetCodes []string `json:"budget_codes" validate:"dive,budget_code"`
	TargetDate  string   `json:"target_date" validate:"omitempty,datetime=2006-01-02"`
	TargetTime  string   `json:"target_time" validate:"omitempty,datetime=15:04"`
	UseAI       bool     `json:"use_ai"`

	// RandomStart overrides the configured start-offset policy when set.
	RandomStart *bool `json:"random_start,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("budget_code", func(fl validator.FieldLevel) bool {
		return IsBudgetCode(fl.Field().String())
	})
	return v
}

// Validate checks the request fields.
func (r *SearchRequest) Validate() error {
	return validate.Struct(r)
}

// WithDefaults fills an absent target date/time with tomorrow 19:00 relative to now.
func (r SearchRequest) WithDefaults(now time.Time) SearchRequest {
	if r.TargetDate == "" {
		r.TargetDate = now.In(JST).AddDate(0, 0, 1).Format(DateLayout)
	}
	if r.TargetTime == "" {
		r.TargetTime = "19:00"
	}
	return r
}

// Keyword composes the free-text directory query: prefecture, area, genre.
func (r *SearchRequest) Keyword() string {
	parts := []string{r.Prefecture, r.Area}
	if r.Genre != "" && r.Genre != GenreAny {
		parts = append(parts, r.Genre)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

// BudgetFilters returns the budget codes with duplicates removed, in order.
func (r *SearchRequest) BudgetFilters() []string {
	seen := make(map[string]struct{}, len(r.BudgetCodes))
	var out []string
	for _, code := range r.BudgetCodes {
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	return out
}

// Target combines the target date and time in JST.
func (r *SearchRequest) Target() (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, r.TargetDate+" "+r.TargetTime, JST)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid target date/time %q %q: %w", r.TargetDate, r.TargetTime, err)
	}
	return t, nil
}
