package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in     string
		want   Priority
		wantOK bool
	}{
		{"Alta", PriorityHigh, true},
		{"alta", PriorityHigh, true},
		{"ALTA", PriorityHigh, true},
		{"baixa", PriorityLow, true},
		{"MeDiA", PriorityMedium, true},
		{"Urgente", "", false},
		{"", "", false},
		{" Alta", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParsePriority(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   Status
		wantOK bool
	}{
		{"Pendente", StatusPending, true},
		{"pendente", StatusPending, true},
		{"EMANDAMENTO", StatusInProgress, true},
		{"concluida", StatusDone, true},
		{"Em Andamento", "", false},
		{"Done", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseStatus(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncateDate(t *testing.T) {
	// 23:30 at UTC-3 is already the next day in UTC.
	loc := time.FixedZone("BRT", -3*60*60)
	in := time.Date(2026, 10, 17, 23, 30, 15, 500, loc)

	got := TruncateDate(in)

	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), got)
}

func TestToday_HasNoTimeOfDay(t *testing.T) {
	d := Today()

	assert.Equal(t, time.UTC, d.Location())
	assert.Zero(t, d.Hour())
	assert.Zero(t, d.Minute())
	assert.Zero(t, d.Second())
	assert.Zero(t, d.Nanosecond())
}
