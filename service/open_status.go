package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"reserve-assistant/api/llm"
	"reserve-assistant/models/shop"
)

// WeekdayLabels are the single-character Japanese weekday labels indexed by time.Weekday.
var WeekdayLabels = [7]string{"日", "月", "火", "水", "木", "金", "土"}

const (
	noRegularClosure = "無休"
	weekdaySuffix    = "曜"
	closedToken      = "FALSE"
)

// Holiday modifiers do not by themselves close a shop on a plain weekday.
var holidayModifiers = []string{"祝日", "祝前日"}

var closureDelimiters = regexp.MustCompile(`[、,，\s　/]+`)

// OpenStatusResolver decides whether a shop is open at a target time.
// generator may be nil, which disables the model check.
type OpenStatusResolver struct {
	generator llm.TextGenerator
	logger    arbor.ILogger
}

func NewOpenStatusResolver(generator llm.TextGenerator, logger arbor.ILogger) *OpenStatusResolver {
	return &OpenStatusResolver{
		generator: generator,
		logger:    logger,
	}
}

// ModelEnabled reports whether a model credential was configured.
func (r *OpenStatusResolver) ModelEnabled() bool {
	return r.generator != nil
}

// IsOpen applies the regular closure rule first and, when useAI is set and a
// model is configured, asks the model. The model can only turn an open verdict
// into closed; any model failure leaves the verdict open.
func (r *OpenStatusResolver) IsOpen(ctx context.Context, s shop.Shop, target time.Time, useAI bool) shop.OpenVerdict {
	if MatchesRegularClosure(s.Close, target.Weekday()) {
		return shop.OpenVerdict{Open: false, Reason: shop.RegularClosureReason(s.Close)}
	}

	if useAI && r.generator != nil {
		prompt := llm.BuildOpenStatusPrompt(s.Name, s.Open, s.Close, FormatTarget(target))
		reply, err := r.generator.GenerateText(ctx, prompt)
		if err != nil {
			r.logger.Warn().Err(err).Str("shop_id", s.ID).Msg("[OpenStatusResolver] Model check failed, keeping open verdict")
		} else if strings.Contains(strings.ToUpper(strings.TrimSpace(reply)), closedToken) {
			return shop.OpenVerdict{Open: false, Reason: shop.ReasonModelClosed}
		}
	}

	return shop.OpenVerdict{Open: true, Reason: shop.ReasonOK}
}

// MatchesRegularClosure reports whether closeText names weekday as a regular
// closure day, either as "<label>曜" or as a bare delimited label.
func MatchesRegularClosure(closeText string, weekday time.Weekday) bool {
	if closeText == "" || strings.Contains(closeText, noRegularClosure) {
		return false
	}

	cleaned := closeText
	for _, m := range holidayModifiers {
		cleaned = strings.ReplaceAll(cleaned, m, "")
	}

	label := WeekdayLabels[weekday]
	if strings.Contains(cleaned, label+weekdaySuffix) {
		return true
	}
	for _, token := range closureDelimiters.Split(cleaned, -1) {
		if token == label {
			return true
		}
	}
	return false
}

// MentionsWeekday is the looser check behind the card highlight: the label
// appears anywhere in the closure text.
func MentionsWeekday(closeText string, weekday time.Weekday) bool {
	return strings.Contains(closeText, WeekdayLabels[weekday])
}

// FormatTarget renders the target as "2006/01/02 (水) 15:04" for the model prompt.
func FormatTarget(target time.Time) string {
	return fmt.Sprintf("%s (%s) %s", target.Format("2006/01/02"), WeekdayLabels[target.Weekday()], target.Format("15:04"))
}
