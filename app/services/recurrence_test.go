package services

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"taskdesk/app/models"
)

func TestRecurrenceNext(t *testing.T) {
	base := time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC)
	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 9, 0, 0, 0, time.UTC) }
	r := Recurrence{Instances: 5}

	cases := []struct {
		freq models.Frequency
		want []time.Time
	}{
		{models.FrequencyDaily, []time.Time{day(2, 1), day(2, 2), day(2, 3), day(2, 4), day(2, 5)}},
		{models.FrequencyWeekly, []time.Time{day(2, 7), day(2, 14), day(2, 21), day(2, 28), day(3, 6)}},
		{models.FrequencyMonthly, []time.Time{day(2, 29), day(3, 31), day(4, 30), day(5, 31), day(6, 30)}},
	}
	for _, tc := range cases {
		t.Run(string(tc.freq), func(t *testing.T) {
			got := r.Next(base, tc.freq)
			if !slices.EqualFunc(got, tc.want, time.Time.Equal) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	if got := r.Next(base, "yearly"); got != nil {
		t.Fatalf("expected nil for unknown frequency, got %v", got)
	}
	if got := (Recurrence{}).Next(base, models.FrequencyDaily); got != nil {
		t.Fatalf("expected nil with zero instances, got %v", got)
	}
}

func TestRecurrenceExpand_KeepsParentAndClearsCompletion(t *testing.T) {
	due := models.NewDate(2024, time.July, 1)
	done := testNow
	src := models.Task{
		ID:                  10,
		Title:               "Water plants",
		Description:         "balcony",
		Priority:            models.PriorityLow,
		Completed:           true,
		CompletedAt:         &done,
		DueDate:             &due,
		ParentTaskID:        ptr(int64(3)),
		IsRecurring:         true,
		RecurrenceFrequency: models.FrequencyWeekly,
		Category:            "personal",
	}
	next := int64(10)
	out := Recurrence{Instances: 2}.Expand(src, func() int64 { next++; return next })

	if len(out) != 2 {
		t.Fatalf("expected 2 instances, got %d", len(out))
	}
	for i, inst := range out {
		if inst.ID != int64(11+i) {
			t.Fatalf("expected id %d, got %d", 11+i, inst.ID)
		}
		if inst.ParentTaskID == nil || *inst.ParentTaskID != 3 {
			t.Fatalf("expected parent 3, got %v", inst.ParentTaskID)
		}
		if inst.Completed || inst.CompletedAt != nil || inst.IsRecurring || inst.RecurrenceFrequency != "" {
			t.Fatalf("expected plain incomplete instance, got %+v", inst)
		}
		if inst.Description != "balcony" || inst.Category != "personal" || inst.Priority != models.PriorityLow {
			t.Fatalf("expected copied fields, got %+v", inst)
		}
	}
	*out[0].ParentTaskID = 99
	if *src.ParentTaskID != 3 {
		t.Fatalf("expected instance not to alias the source parent id")
	}
}

func TestDescendants(t *testing.T) {
	tasks := []models.Task{
		seedTask(1, "a", 0),
		seedTask(2, "b", 1),
		seedTask(3, "c", 2),
		seedTask(4, "d", 1),
		seedTask(5, "e", 0),
	}
	got := Descendants(tasks, 1)
	slices.Sort(got)
	if !slices.Equal(got, []int64{2, 3, 4}) {
		t.Fatalf("expected [2 3 4], got %v", got)
	}
	if got := Descendants(tasks, 5); len(got) != 0 {
		t.Fatalf("expected no descendants, got %v", got)
	}

	cyclic := []models.Task{seedTask(1, "a", 2), seedTask(2, "b", 1)}
	if got := Descendants(cyclic, 1); !slices.Equal(got, []int64{2}) {
		t.Fatalf("expected [2] on a cycle, got %v", got)
	}
}

func TestSubtaskProgress(t *testing.T) {
	done := seedTask(2, "b", 1)
	done.Completed = true
	tasks := []models.Task{seedTask(1, "a", 0), done, seedTask(3, "c", 1), seedTask(4, "d", 3)}

	if got := SubtaskProgress(tasks, 1); got != (Progress{Completed: 1, Total: 2}) {
		t.Fatalf("expected 1/2 direct subtasks, got %+v", got)
	}
	if got := SubtaskProgress(tasks, 4); got != (Progress{}) {
		t.Fatalf("expected empty progress, got %+v", got)
	}
}

func TestLatency(t *testing.T) {
	if d := NewLatency(0.5).Delay(OpCreate); d != 200*time.Millisecond {
		t.Fatalf("expected 200ms, got %v", d)
	}
	if d := NewLatency(0).Delay(OpCreate); d != 0 {
		t.Fatalf("expected no delay, got %v", d)
	}
	if err := (Latency{}).Wait(context.Background(), OpGetAll); err != nil {
		t.Fatalf("expected zero latency not to fail, got %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	start := time.Now()
	err := NewLatency(10).Wait(ctx, OpGetAll)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("expected early return, waited %v", elapsed)
	}
}
