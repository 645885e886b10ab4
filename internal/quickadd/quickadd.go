// Package quickadd parses one-line task entries such as
// "Review PR !high #progress due:friday".
package quickadd

import (
	"strings"
	"time"

	"github.com/dori/taskboard/internal/model"
)

// Parse splits text into a task. Recognised tokens are removed from the
// description; anything unrecognised stays in it.
//
//	!low !medium !high           priority
//	#todo #progress #done        status
//	due:<date>                   due date, see ParseDate
func Parse(text string, now time.Time) model.TaskInput {
	in := model.TaskInput{
		Status:   model.StatusTodo,
		Priority: model.PriorityMedium,
	}

	var words []string
	for _, word := range strings.Fields(text) {
		switch {
		case strings.HasPrefix(word, "!") && len(word) > 1:
			if p, ok := model.ParsePriority(word[1:]); ok {
				in.Priority = p
				continue
			}

		case strings.HasPrefix(word, "#") && len(word) > 1:
			if s, ok := model.ParseStatus(word[1:]); ok {
				in.Status = s
				continue
			}

		case strings.HasPrefix(strings.ToLower(word), "due:"):
			if d, ok := ParseDate(word[len("due:"):], now); ok {
				in.DueDate = d.Format(model.DateLayout)
				continue
			}
		}
		words = append(words, word)
	}

	in.Description = strings.Join(words, " ")
	return in
}

// ParseDate understands today, tomorrow, weekday names (the next such day,
// never today), "nextweek", and a few absolute layouts. Dates without a year
// fall in the current year.
func ParseDate(s string, now time.Time) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return time.Time{}, false
	case "today":
		return today, true
	case "tomorrow", "tom":
		return today.AddDate(0, 0, 1), true
	case "nextweek", "next week":
		return today.AddDate(0, 0, 7), true
	}

	if day, ok := weekdays[s]; ok {
		until := int(day - today.Weekday())
		if until <= 0 {
			until += 7
		}
		return today.AddDate(0, 0, until), true
	}

	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, s, now.Location())
		if err != nil {
			continue
		}
		if t.Year() == 0 {
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
		}
		return t, true
	}
	return time.Time{}, false
}

// NormalizeDate rewrites natural due-date text as YYYY-MM-DD. Text it cannot
// parse is returned trimmed but otherwise unchanged.
func NormalizeDate(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if d, ok := ParseDate(s, now); ok {
		return d.Format(model.DateLayout)
	}
	return s
}

var weekdays = map[string]time.Weekday{
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
	"sunday": time.Sunday, "sun": time.Sunday,
}

// lowercase month names parse because time.Parse matches them case-insensitively
var layouts = []string{
	model.DateLayout,
	"01/02/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"Jan 2",
}
