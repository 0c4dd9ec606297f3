package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateUnmarshalJSON(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{`"2024-07-15"`, time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)},
		{`"2024-07-15T09:30:00Z"`, time.Date(2024, 7, 15, 9, 30, 0, 0, time.UTC)},
		{`""`, time.Time{}},
		{`null`, time.Time{}},
	}
	for _, tc := range cases {
		var d Date
		if err := d.UnmarshalJSON([]byte(tc.in)); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.in, err)
		}
		if !d.Equal(tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.in, tc.want, d.Time)
		}
	}

	var d Date
	if err := d.UnmarshalJSON([]byte(`"15/07/2024"`)); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}

func TestDateMarshalJSON(t *testing.T) {
	b, _ := json.Marshal(NewDate(2024, time.July, 15))
	if string(b) != `"2024-07-15"` {
		t.Fatalf("expected date-only output, got %s", b)
	}
	b, _ = json.Marshal(Date{Time: time.Date(2024, 7, 15, 9, 30, 0, 0, time.UTC)})
	if string(b) != `"2024-07-15T09:30:00Z"` {
		t.Fatalf("expected RFC 3339 output, got %s", b)
	}
	b, _ = json.Marshal(Date{})
	if string(b) != `null` {
		t.Fatalf("expected null for zero date, got %s", b)
	}
}

func TestTaskPatch_DecodesDueDate(t *testing.T) {
	var p TaskPatch
	if err := json.Unmarshal([]byte(`{"title":"x","due_date":"2024-08-01","parent_task_id":0}`), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.DueDate == nil || !p.DueDate.Equal(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected due date, got %v", p.DueDate)
	}
	if p.ParentTaskID == nil || *p.ParentTaskID != 0 {
		t.Fatalf("expected explicit zero parent, got %v", p.ParentTaskID)
	}
	if p.Description != nil {
		t.Fatalf("expected absent description to stay nil")
	}
}

func TestTaskClone(t *testing.T) {
	parent := int64(1)
	due := NewDate(2024, time.July, 1)
	done := time.Now()
	orig := Task{ID: 2, ParentTaskID: &parent, DueDate: &due, CompletedAt: &done}

	c := orig.Clone()
	*c.ParentTaskID = 9
	c.DueDate.Time = time.Time{}
	*c.CompletedAt = time.Time{}

	if *orig.ParentTaskID != 1 || orig.DueDate.IsZero() || orig.CompletedAt.IsZero() {
		t.Fatalf("clone aliased the original: %+v", orig)
	}
}

func TestPriorityRank(t *testing.T) {
	order := []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() <= order[i].Rank() {
			t.Fatalf("expected %s above %s", order[i-1], order[i])
		}
	}
	if Priority("whatever").Rank() != PriorityLow.Rank() {
		t.Fatalf("expected unknown priority to rank as low")
	}
}
