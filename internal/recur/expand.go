package recur

import (
	"fmt"
	"time"

	"github.com/azverev/relaycal/internal/errs"
	"github.com/azverev/relaycal/internal/model"
)

// DateFormat is the calendar-date form used by seed dates and occurrences.
const DateFormat = "2006-01-02"

// Expand generates the ordered occurrence sequence for a seed start/end date
// pair under cfg. Index 0 is the seed occurrence. Output is strictly
// increasing by start date with no duplicates.
//
// Expand assumes cfg passed Validate; it fails only on unparseable seed dates.
func Expand(startDate, endDate string, cfg model.RecurrenceConfig) ([]model.Occurrence, error) {
	start, err := parseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return nil, err
	}

	if !cfg.Enabled {
		return applyTimes([]model.Occurrence{{StartDate: startDate, EndDate: endDate}}, cfg), nil
	}

	interval := cfg.Interval
	if interval < 1 {
		interval = 1
	}
	maxN := cfg.MaxOccurrences
	if maxN < 1 {
		maxN = 1
	} else if maxN > MaxOccurrencesLimit {
		maxN = MaxOccurrencesLimit
	}
	spanDays := int(end.Sub(start).Hours() / 24)

	var starts []time.Time
	switch cfg.Pattern {
	case model.PatternWeekly:
		starts = weeklyStarts(start, cfg.WeeklyDays, interval, maxN, cfg.SeedPolicy)
	case model.PatternMonthly:
		starts = monthlyStarts(start, interval, maxN)
	default:
		starts = dailyStarts(start, interval, maxN)
	}

	occs := make([]model.Occurrence, 0, len(starts))
	for _, s := range starts {
		occs = append(occs, model.Occurrence{
			StartDate: s.Format(DateFormat),
			EndDate:   s.AddDate(0, 0, spanDays).Format(DateFormat),
		})
	}
	return applyTimes(occs, cfg), nil
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", errs.ErrInvalidDate, s)
	}
	return t, nil
}

// dailyStarts spaces occurrences interval days apart.
func dailyStarts(start time.Time, interval, maxN int) []time.Time {
	out := make([]time.Time, 0, maxN)
	for i := 0; i < maxN; i++ {
		out = append(out, start.AddDate(0, 0, i*interval))
	}
	return out
}

// weeklyStarts walks forward day-by-day from the seed, emitting on selected
// weekdays. The interval multiplies the week-to-week gap: after a full
// week's worth of days has been scanned, the walk jumps interval-1 weeks
// ahead. An unmatched seed weekday is resolved by policy: snap-forward keeps
// the full occurrence count starting at the first selected weekday, strict
// discards the seed slot so one fewer occurrence is emitted.
func weeklyStarts(start time.Time, weeklyDays []int, interval, maxN int, policy model.SeedPolicy) []time.Time {
	selected := make(map[time.Weekday]bool, len(weeklyDays))
	for _, d := range weeklyDays {
		if d >= 0 && d <= 6 {
			selected[time.Weekday(d)] = true
		}
	}
	if len(selected) == 0 {
		return nil
	}

	if !selected[start.Weekday()] && policy == model.SeedStrict {
		maxN--
		if maxN < 1 {
			return nil
		}
	}

	out := make([]time.Time, 0, maxN)
	cur := start
	for len(out) < maxN {
		for i := 0; i < 7 && len(out) < maxN; i++ {
			if selected[cur.Weekday()] {
				out = append(out, cur)
			}
			cur = cur.AddDate(0, 0, 1)
		}
		cur = cur.AddDate(0, 0, (interval-1)*7)
	}
	return out
}

// monthlyStarts advances by interval months per occurrence, clipping the
// day-of-month to the target month's length (Jan 31 + 1 month = Feb 28/29).
func monthlyStarts(start time.Time, interval, maxN int) []time.Time {
	out := make([]time.Time, 0, maxN)
	for i := 0; i < maxN; i++ {
		out = append(out, addMonthsClipped(start, i*interval))
	}
	return out
}

func addMonthsClipped(t time.Time, months int) time.Time {
	y, m := t.Year(), int(t.Month())-1+months
	y += m / 12
	m = m % 12
	if m < 0 {
		m += 12
		y--
	}
	month := time.Month(m + 1)
	day := t.Day()
	if last := daysInMonth(y, month); day > last {
		day = last
	}
	return time.Date(y, month, day, 0, 0, 0, 0, t.Location())
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// applyTimes fills occurrence times from the configuration. Under the
// per-occurrence mode each occurrence carries its own externally supplied
// pair; otherwise the single seed pair applies to every occurrence.
func applyTimes(occs []model.Occurrence, cfg model.RecurrenceConfig) []model.Occurrence {
	for i := range occs {
		if cfg.TimeMode == model.TimePerOccurrence {
			if i < len(cfg.PerOccurrenceTimes) {
				occs[i].StartTime = cfg.PerOccurrenceTimes[i].StartTime
				occs[i].EndTime = cfg.PerOccurrenceTimes[i].EndTime
			}
			continue
		}
		occs[i].StartTime = cfg.StartTime
		occs[i].EndTime = cfg.EndTime
	}
	return occs
}
