package core

import (
	"testing"
	"time"
)

func dueRecord(id string, due Date) Record {
	return Record{
		ID:         id,
		Amount:     Money{Cents: 100},
		Kind:       Debt,
		Category:   CategoryLoanPayment,
		OccurredOn: NewDate(2025, 6, 1),
		DueOn:      due,
	}
}

func TestUpcomingRemindersWindow(t *testing.T) {
	now := time.Date(2025, 6, 10, 17, 45, 0, 0, time.UTC) // time of day must not matter
	cases := []struct {
		name string
		due  Date
		want bool
	}{
		{"due today", NewDate(2025, 6, 10), true},
		{"due tomorrow", NewDate(2025, 6, 11), true},
		{"due in seven days", NewDate(2025, 6, 17), true},
		{"due in eight days", NewDate(2025, 6, 18), false},
		{"due yesterday", NewDate(2025, 6, 9), false},
		{"no due date", Date{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := UpcomingReminders([]Record{dueRecord("r", tc.due)}, now)
			if (len(got) == 1) != tc.want {
				t.Fatalf("included=%v, want %v", len(got) == 1, tc.want)
			}
		})
	}
}

func TestUpcomingRemindersDueIn(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	rs := UpcomingReminders([]Record{
		dueRecord("today", NewDate(2025, 6, 10)),
		dueRecord("plus3", NewDate(2025, 6, 13)),
	}, now)
	if len(rs) != 2 {
		t.Fatalf("got %d reminders, want 2", len(rs))
	}
	if rs[0].DueIn != 0 || rs[1].DueIn != 3 {
		t.Fatalf("dueIn = %d,%d, want 0,3", rs[0].DueIn, rs[1].DueIn)
	}
}

func TestUpcomingRemindersNoDedup(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	same := NewDate(2025, 6, 12)
	rs := UpcomingReminders([]Record{dueRecord("a", same), dueRecord("b", same)}, now)
	if len(rs) != 2 {
		t.Fatalf("each qualifying record appears once; got %d", len(rs))
	}
}
