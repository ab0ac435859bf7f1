package recur

import (
	"errors"
	"strings"
	"testing"

	"github.com/azverev/relaycal/internal/errs"
	"github.com/azverev/relaycal/internal/model"
)

func starts(occs []model.Occurrence) []string {
	out := make([]string, 0, len(occs))
	for _, o := range occs {
		out = append(out, o.StartDate)
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestExpand_Disabled_ReturnsSeedSpan(t *testing.T) {
	t.Parallel()
	cfg := model.RecurrenceConfig{
		Enabled:        false,
		Pattern:        model.PatternDaily,
		Interval:       4,
		MaxOccurrences: 6,
	}
	occs, err := Expand("2024-03-10", "2024-03-12", cfg)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(occs) != 1 || occs[0].StartDate != "2024-03-10" || occs[0].EndDate != "2024-03-12" {
		t.Fatalf("disabled config must yield the seed span, got %+v", occs)
	}
}

func TestExpand_InvalidDate_MentionsLiteral(t *testing.T) {
	t.Parallel()
	cfg := model.RecurrenceConfig{Enabled: true, Pattern: model.PatternDaily, Interval: 1, MaxOccurrences: 2}

	_, err := Expand("invalid-date", "2024-01-02", cfg)
	if !errors.Is(err, errs.ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid-date") {
		t.Fatalf("error must include the offending literal, got %q", err.Error())
	}

	_, err = Expand("2024-01-02", "2024-13-40", cfg)
	if !errors.Is(err, errs.ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate for end date, got %v", err)
	}
	if !strings.Contains(err.Error(), "2024-13-40") {
		t.Fatalf("error must include the offending literal, got %q", err.Error())
	}
}

func TestExpand_Daily_PreservesSpan(t *testing.T) {
	t.Parallel()
	cfg := model.RecurrenceConfig{Enabled: true, Pattern: model.PatternDaily, Interval: 1, MaxOccurrences: 3}
	occs, err := Expand("2024-01-01", "2024-01-02", cfg)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !sameStrings(starts(occs), []string{"2024-01-01", "2024-01-02", "2024-01-03"}) {
		t.Fatalf("unexpected starts: %v", starts(occs))
	}
	for i, o := range occs {
		if o.EndDate <= o.StartDate {
			t.Fatalf("occurrence %d must keep the one-day span, got %+v", i, o)
		}
	}
	if occs[2].EndDate != "2024-01-04" {
		t.Fatalf("span not preserved: %+v", occs[2])
	}
}

func TestExpand_Daily_Interval(t *testing.T) {
	t.Parallel()
	cfg := model.RecurrenceConfig{Enabled: true, Pattern: model.PatternDaily, Interval: 3, MaxOccurrences: 3}
	occs, err := Expand("2024-02-27", "2024-02-27", cfg)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !sameStrings(starts(occs), []string{"2024-02-27", "2024-03-01", "2024-03-04"}) {
		t.Fatalf("unexpected starts: %v", starts(occs))
	}
}

func TestExpand_Weekly_SeedOnSelectedDay(t *testing.T) {
	t.Parallel()
	// 2024-01-01 is a Monday; weekday index 1 = Monday.
	cfg := model.RecurrenceConfig{
		Enabled: true, Pattern: model.PatternWeekly,
		Interval: 1, MaxOccurrences: 2, WeeklyDays: []int{1},
	}
	occs, err := Expand("2024-01-01", "2024-01-01", cfg)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !sameStrings(starts(occs), []string{"2024-01-01", "2024-01-08"}) {
		t.Fatalf("unexpected starts: %v", starts(occs))
	}
}

func TestExpand_Weekly_IntervalMultipliesWeekGap(t *testing.T) {
	t.Parallel()
	// Monday and Wednesday, every second week.
	cfg := model.RecurrenceConfig{
		Enabled: true, Pattern: model.PatternWeekly,
		Interval: 2, MaxOccurrences: 4, WeeklyDays: []int{1, 3},
	}
	occs, err := Expand("2024-01-01", "2024-01-01", cfg)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []string{"2024-01-01", "2024-01-03", "2024-01-15", "2024-01-17"}
	if !sameStrings(starts(occs), want) {
		t.Fatalf("want %v, got %v", want, starts(occs))
	}
}

func TestExpand_Weekly_UnmatchedSeed_SnapForward(t *testing.T) {
	t.Parallel()
	// Seed 2024-01-02 is a Tuesday; only Friday (5) selected.
	cfg := model.RecurrenceConfig{
		Enabled: true, Pattern: model.PatternWeekly,
		Interval: 1, MaxOccurrences: 2, WeeklyDays: []int{5},
		SeedPolicy: model.SeedSnapForward,
	}
	occs, err := Expand("2024-01-02", "2024-01-02", cfg)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !sameStrings(starts(occs), []string{"2024-01-05", "2024-01-12"}) {
		t.Fatalf("snap policy: unexpected starts %v", starts(occs))
	}
}

func TestExpand_Weekly_UnmatchedSeed_Strict(t *testing.T) {
	t.Parallel()
	// Same seed, strict policy: the seed slot is discarded.
	cfg := model.RecurrenceConfig{
		Enabled: true, Pattern: model.PatternWeekly,
		Interval: 1, MaxOccurrences: 2, WeeklyDays: []int{5},
		SeedPolicy: model.SeedStrict,
	}
	occs, err := Expand("2024-01-02", "2024-01-02", cfg)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !sameStrings(starts(occs), []string{"2024-01-05"}) {
		t.Fatalf("strict policy: unexpected starts %v", starts(occs))
	}
}

func TestExpand_Monthly_ClipsDayOfMonth(t *testing.T) {
	t.Parallel()
	cfg := model.RecurrenceConfig{
		Enabled: true, Pattern: model.PatternMonthly,
		Interval: 1, MaxOccurrences: 4,
		Monthly: &model.MonthlyConfig{Mode: model.MonthlyByDate},
	}
	occs, err := Expand("2024-01-31", "2024-01-31", cfg)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []string{"2024-01-31", "2024-02-29", "2024-03-31", "2024-04-30"}
	if !sameStrings(starts(occs), want) {
		t.Fatalf("want %v, got %v", want, starts(occs))
	}
}

func TestExpand_Monthly_Interval(t *testing.T) {
	t.Parallel()
	cfg := model.RecurrenceConfig{
		Enabled: true, Pattern: model.PatternMonthly,
		Interval: 3, MaxOccurrences: 3,
		Monthly: &model.MonthlyConfig{Mode: model.MonthlyByDate},
	}
	occs, err := Expand("2024-11-30", "2024-12-01", cfg)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !sameStrings(starts(occs), []string{"2024-11-30", "2025-02-28", "2025-05-30"}) {
		t.Fatalf("unexpected starts: %v", starts(occs))
	}
	// One-day span survives the month hops.
	if occs[1].EndDate != "2025-03-01" {
		t.Fatalf("span not preserved: %+v", occs[1])
	}
}

func TestExpand_SingleTimeMode_FillsEveryOccurrence(t *testing.T) {
	t.Parallel()
	cfg := model.RecurrenceConfig{
		Enabled: true, Pattern: model.PatternDaily, Interval: 1, MaxOccurrences: 2,
		TimeMode: model.TimeSingle, StartTime: "18:00", EndTime: "20:30",
	}
	occs, err := Expand("2024-06-01", "2024-06-01", cfg)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	for i, o := range occs {
		if o.StartTime != "18:00" || o.EndTime != "20:30" {
			t.Fatalf("occurrence %d missing seed times: %+v", i, o)
		}
	}
}

func TestExpand_PerOccurrenceTimeMode(t *testing.T) {
	t.Parallel()
	cfg := model.RecurrenceConfig{
		Enabled: true, Pattern: model.PatternDaily, Interval: 1, MaxOccurrences: 3,
		TimeMode: model.TimePerOccurrence,
		PerOccurrenceTimes: []model.OccurrenceTime{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "14:00", EndTime: "15:30"},
		},
	}
	occs, err := Expand("2024-06-01", "2024-06-01", cfg)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if occs[0].StartTime != "09:00" || occs[1].EndTime != "15:30" {
		t.Fatalf("per-occurrence times not applied: %+v", occs)
	}
	if occs[2].StartTime != "" || occs[2].EndTime != "" {
		t.Fatalf("occurrence without supplied times must stay empty: %+v", occs[2])
	}
}

func TestExpand_OutputStrictlyIncreasing(t *testing.T) {
	t.Parallel()
	cfgs := []model.RecurrenceConfig{
		{Enabled: true, Pattern: model.PatternDaily, Interval: 2, MaxOccurrences: 6},
		{Enabled: true, Pattern: model.PatternWeekly, Interval: 1, MaxOccurrences: 6, WeeklyDays: []int{0, 3, 6}},
		{Enabled: true, Pattern: model.PatternMonthly, Interval: 1, MaxOccurrences: 6, Monthly: &model.MonthlyConfig{Mode: model.MonthlyByDate}},
	}
	for _, cfg := range cfgs {
		occs, err := Expand("2024-05-15", "2024-05-15", cfg)
		if err != nil {
			t.Fatalf("Expand(%s): %v", cfg.Pattern, err)
		}
		for i := 1; i < len(occs); i++ {
			if occs[i].StartDate <= occs[i-1].StartDate {
				t.Fatalf("%s: starts not strictly increasing: %v", cfg.Pattern, starts(occs))
			}
		}
	}
}
