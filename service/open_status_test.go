package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reserve-assistant/models/shop"
)

func TestMatchesRegularClosure(t *testing.T) {
	tests := []struct {
		name      string
		closeText string
		weekday   time.Weekday
		want      bool
	}{
		{"weekday with marker", "水曜", time.Wednesday, true},
		{"weekday with marker and suffix", "火曜日", time.Tuesday, true},
		{"nth weekday", "第3火曜", time.Tuesday, true},
		{"with holiday exception", "毎週水曜日（祝日の場合は営業）", time.Wednesday, true},
		{"other weekday", "日曜", time.Monday, false},
		{"irregular", "不定休", time.Wednesday, false},
		{"no regular closure", "無休", time.Sunday, false},
		{"no regular closure with text", "年中無休(年末年始除く)", time.Monday, false},
		{"empty", "", time.Friday, false},
		{"bare tokens comma", "水, 木", time.Thursday, true},
		{"bare tokens full-width comma", "土，日", time.Sunday, true},
		{"bare tokens ideographic comma", "月、祝日", time.Monday, true},
		{"holiday only does not close sunday", "月、祝日", time.Sunday, false},
		{"day before holiday stripped", "祝前日", time.Sunday, false},
		{"slash separated", "土/日", time.Sunday, true},
		{"full-width space separated", "月　火", time.Tuesday, true},
		{"bare label inside word", "日祝", time.Sunday, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesRegularClosure(tt.closeText, tt.weekday))
		})
	}
}

func TestIsOpen_RegularClosureCitesRawText(t *testing.T) {
	r := NewOpenStatusResolver(nil, testLogger())
	s := openShop("J1", "10")
	s.Close = "水曜"

	verdict := r.IsOpen(context.Background(), s, wednesday19, false)

	assert.False(t, verdict.Open)
	assert.Equal(t, "regular closure day: 水曜", verdict.Reason)
	assert.Contains(t, verdict.Reason, "水曜")
}

func TestIsOpen_IrregularWithoutModelIsOpen(t *testing.T) {
	r := NewOpenStatusResolver(nil, testLogger())
	s := openShop("J1", "10")
	s.Close = "不定休"

	verdict := r.IsOpen(context.Background(), s, wednesday19, false)

	assert.True(t, verdict.Open)
	assert.Equal(t, shop.ReasonOK, verdict.Reason)
}

func TestIsOpen_RuleClosedNeverConsultsModel(t *testing.T) {
	gen := &countingGenerator{reply: "TRUE"}
	r := NewOpenStatusResolver(gen, testLogger())
	s := openShop("J1", "10")
	s.Close = "水曜日"

	verdict := r.IsOpen(context.Background(), s, wednesday19, true)

	assert.False(t, verdict.Open)
	assert.Equal(t, 0, gen.Calls())
}

func TestIsOpen_ModelStep(t *testing.T) {
	tests := []struct {
		name       string
		reply      string
		err        error
		useAI      bool
		wantOpen   bool
		wantReason string
		wantCalls  int
	}{
		{"model says closed", "FALSE", nil, true, false, shop.ReasonModelClosed, 1},
		{"model says closed lowercase", " false\n", nil, true, false, shop.ReasonModelClosed, 1},
		{"model says open", "TRUE", nil, true, true, shop.ReasonOK, 1},
		{"model fails open", "", errors.New("deadline exceeded"), true, true, shop.ReasonOK, 1},
		{"ai disabled", "FALSE", nil, false, true, shop.ReasonOK, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &countingGenerator{reply: tt.reply, err: tt.err}
			r := NewOpenStatusResolver(gen, testLogger())
			s := openShop("J1", "10")
			s.Close = "第3火曜"

			verdict := r.IsOpen(context.Background(), s, wednesday19, tt.useAI)

			assert.Equal(t, tt.wantOpen, verdict.Open)
			assert.Equal(t, tt.wantReason, verdict.Reason)
			assert.Equal(t, tt.wantCalls, gen.Calls())
		})
	}
}

func TestIsOpen_NoCredentialSkipsModel(t *testing.T) {
	r := NewOpenStatusResolver(nil, testLogger())
	assert.False(t, r.ModelEnabled())

	verdict := r.IsOpen(context.Background(), openShop("J1", "10"), wednesday19, true)
	assert.True(t, verdict.Open)
}

func TestFormatTarget(t *testing.T) {
	assert.Equal(t, "2026/10/21 (水) 19:00", FormatTarget(wednesday19))
}

func TestMentionsWeekday(t *testing.T) {
	assert.True(t, MentionsWeekday("日祝", time.Sunday))
	assert.False(t, MentionsWeekday("月曜", time.Sunday))
}
