package model

import (
	"strings"
	"time"
)

// Priority is the urgency of a task. Valid values are Baixa, Media and Alta
// (low, medium, high). Input is matched case-insensitively and stored in
// the canonical casing of the constants below.
type Priority string

const (
	PriorityLow    Priority = "Baixa"
	PriorityMedium Priority = "Media"
	PriorityHigh   Priority = "Alta"
)

// Priorities lists every valid priority in display order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Status is the progress of a task. Valid values are Pendente, EmAndamento
// and Concluida (pending, in progress, done).
//
// There is no workflow: any status may follow any other.
type Status string

const (
	StatusPending    Status = "Pendente"
	StatusInProgress Status = "EmAndamento"
	StatusDone       Status = "Concluida"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusDone}

// ParsePriority matches s against the valid priorities ignoring case.
// It returns the canonical value and true on a match.
func ParsePriority(s string) (Priority, bool) {
	for _, p := range Priorities {
		if strings.EqualFold(s, string(p)) {
			return p, true
		}
	}
	return "", false
}

// ParseStatus matches s against the valid statuses ignoring case.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// Task is a single to-do item owned by exactly one user.
//
// DateCreated is a calendar date: the time-of-day part is always zero
// and the location is UTC. Use Today() to produce it.
type Task struct {
	ID          int64     `json:"id"          db:"Id"`
	Title       string    `json:"title"       db:"Title"`
	Description string    `json:"description" db:"Descriptions"`
	Priority    Priority  `json:"priority"    db:"Priority"`
	Status      Status    `json:"status"      db:"Status"`
	DateCreated time.Time `json:"dateCreated" db:"DateCreated"`
	UserID      int64     `json:"-"           db:"UsuarioId"`
}

// DateLayout is how DateCreated is written to and read from the database.
const DateLayout = "2006-01-02"

// Today returns the current UTC date with the time-of-day truncated.
func Today() time.Time {
	return TruncateDate(time.Now())
}

// TruncateDate drops the time-of-day of t after converting it to UTC.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
