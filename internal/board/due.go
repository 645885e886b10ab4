package board

import (
	"math"
	"strings"
	"time"

	"github.com/dori/taskboard/internal/model"
)

// DueClass labels a task by how close its due date is
type DueClass int

const (
	DueNone DueClass = iota
	DueSoon
	DueOverdue
)

func (c DueClass) String() string {
	switch c {
	case DueSoon:
		return "due-soon"
	case DueOverdue:
		return "overdue"
	default:
		return ""
	}
}

// DueSoonDays is the inclusive upper bound of the due-soon window
const DueSoonDays = 3

var dueLayouts = []string{
	model.DateLayout,
	time.RFC3339,
	"Jan 2, 2006",
	"01/02/2006",
}

// ParseDue parses due-date text in the local zone of now
func ParseDue(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysUntil is the signed day difference due - now, rounded up
func DaysUntil(due, now time.Time) int {
	d := due.Sub(now).Hours() / 24
	return int(math.Ceil(d))
}

// Classify labels due-date text against now. Empty or unparseable text is
// never classified.
func Classify(due string, now time.Time) DueClass {
	return classifyWithin(due, now, DueSoonDays)
}

func classifyWithin(due string, now time.Time, soonDays int) DueClass {
	d, ok := ParseDue(due, now.Location())
	if !ok {
		return DueNone
	}
	days := DaysUntil(d, now)
	switch {
	case days < 0:
		return DueOverdue
	case days <= soonDays:
		return DueSoon
	default:
		return DueNone
	}
}
