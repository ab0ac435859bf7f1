package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/azverev/relaycal/internal/errs"
	"github.com/azverev/relaycal/internal/model"
	"github.com/azverev/relaycal/internal/recur"
	"github.com/azverev/relaycal/internal/tags"
)

func dailyDraft() model.EventDraft {
	return model.EventDraft{
		Title:     "Standup",
		Content:   "Daily sync",
		Location:  "Room 2",
		StartDate: "2024-01-01",
		EndDate:   "2024-01-01",
		Recur: model.RecurrenceConfig{
			Enabled: true, Pattern: model.PatternDaily,
			Interval: 1, MaxOccurrences: 3,
		},
	}
}

func TestPublishSeries_FansOutPerOccurrence(t *testing.T) {
	t.Parallel()
	rl := &fakeRelay{}
	s := NewCalendar(rl, &fakeSigner{}, Timeouts{})
	s.now = func() time.Time { return time.Unix(2000, 0) }

	recs, err := s.PublishSeries(context.Background(), dailyDraft())
	if err != nil {
		t.Fatalf("PublishSeries: %v", err)
	}
	if len(recs) != 3 || len(rl.published) != 3 {
		t.Fatalf("want 3 published records, got %d/%d", len(recs), len(rl.published))
	}

	wantStarts := []string{"2024-01-01", "2024-01-02", "2024-01-03"}
	slugs := map[string]bool{}
	for i, rec := range recs {
		if rec.TypeCode != model.TypeDateEvent {
			t.Fatalf("record %d: want date-based type code, got %d", i, rec.TypeCode)
		}
		if rec.CreatedAt != 2000 {
			t.Fatalf("record %d: createdAt not taken from clock: %d", i, rec.CreatedAt)
		}
		start, ok := tags.First(rec.Tags, "start")
		if !ok || start != wantStarts[i] {
			t.Fatalf("record %d: start tag want %s, got %q", i, wantStarts[i], start)
		}
		if title, _ := tags.First(rec.Tags, "title"); title != "Standup" {
			t.Fatalf("record %d: missing title tag", i)
		}
		slug, ok := tags.Slug(rec.Tags)
		if !ok || slugs[slug] {
			t.Fatalf("record %d: slug must be present and unique, got %q", i, slug)
		}
		slugs[slug] = true
	}

	// Only the seed carries the interop rule.
	if rule, ok := tags.First(recs[0].Tags, "rrule"); !ok || !strings.Contains(rule, "FREQ=DAILY") {
		t.Fatalf("seed record missing rrule tag: %v", recs[0].Tags)
	}
	if _, ok := tags.First(recs[1].Tags, "rrule"); ok {
		t.Fatalf("non-seed record must not carry the rrule tag")
	}
}

func TestPublishSeries_TimedOccurrencesUseTimeEventType(t *testing.T) {
	t.Parallel()
	draft := dailyDraft()
	draft.Recur.TimeMode = model.TimeSingle
	draft.Recur.StartTime = "18:00"
	draft.Recur.EndTime = "19:00"

	s := NewCalendar(&fakeRelay{}, &fakeSigner{}, Timeouts{})
	recs, err := s.PublishSeries(context.Background(), draft)
	if err != nil {
		t.Fatalf("PublishSeries: %v", err)
	}
	for i, rec := range recs {
		if rec.TypeCode != model.TypeTimeEvent {
			t.Fatalf("record %d: want time-based type code, got %d", i, rec.TypeCode)
		}
		if st, _ := tags.First(rec.Tags, "start_time"); st != "18:00" {
			t.Fatalf("record %d: start_time tag missing: %v", i, rec.Tags)
		}
	}
}

func TestPublishSeries_InvalidConfig(t *testing.T) {
	t.Parallel()
	draft := dailyDraft()
	draft.Recur.Pattern = model.PatternWeekly
	draft.Recur.WeeklyDays = nil

	rl := &fakeRelay{}
	s := NewCalendar(rl, &fakeSigner{}, Timeouts{})
	_, err := s.PublishSeries(context.Background(), draft)
	if err == nil || !strings.Contains(err.Error(), recur.MsgNoWeekdaySelected) {
		t.Fatalf("want validation message, got %v", err)
	}
	if len(rl.published) != 0 {
		t.Fatalf("invalid config must not publish")
	}
}

func TestPublishSeries_InvalidDate(t *testing.T) {
	t.Parallel()
	draft := dailyDraft()
	draft.StartDate = "not-a-date"

	s := NewCalendar(&fakeRelay{}, &fakeSigner{}, Timeouts{})
	_, err := s.PublishSeries(context.Background(), draft)
	if !errors.Is(err, errs.ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
	if !strings.Contains(err.Error(), "not-a-date") {
		t.Fatalf("error must include the literal, got %v", err)
	}
}

func TestPublishSeries_AbortsOnFirstFailure(t *testing.T) {
	t.Parallel()
	rl := &fakeRelay{publishErrOn: 2, publishErr: errors.New("relay rejected")}
	s := NewCalendar(rl, &fakeSigner{}, Timeouts{})

	recs, err := s.PublishSeries(context.Background(), dailyDraft())
	if !errors.Is(err, errs.ErrPublishFailed) {
		t.Fatalf("want ErrPublishFailed, got %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("records accepted before the failure must be returned, got %d", len(recs))
	}
	if !strings.Contains(err.Error(), "occurrence 1") {
		t.Fatalf("error should name the failing occurrence, got %v", err)
	}
}
