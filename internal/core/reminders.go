package core

import "time"

// ReminderWindowDays is the inclusive lookahead for due-date reminders.
const ReminderWindowDays = 7

// Reminder surfaces an obligation whose due date is coming up.
type Reminder struct {
	Record Record
	DueIn  int // whole days until the due date; 0 means due today
}

// UpcomingReminders selects records whose due date falls within the next
// seven days, today included. Past due dates are excluded. Like the summary,
// the clock is an explicit argument; the time of day is ignored.
func UpcomingReminders(records []Record, now time.Time) []Reminder {
	today := DateOf(now)
	var out []Reminder
	for _, r := range records {
		if r.DueOn.IsZero() {
			continue
		}
		diff := daysUntil(today, r.DueOn)
		if diff < 0 || diff > ReminderWindowDays {
			continue
		}
		out = append(out, Reminder{Record: r, DueIn: diff})
	}
	return out
}

// daysUntil computes the whole-day difference by ceiling division of the
// elapsed duration, matching calendar intuition for midnight-truncated dates.
func daysUntil(today, due Date) int {
	d := due.Sub(today.Time)
	days := d / (24 * time.Hour)
	if d%(24*time.Hour) > 0 {
		days++
	}
	return int(days)
}
