// Package ics renders expanded event series as iCalendar payloads for
// interchange with external calendar applications.
package ics

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/azverev/relaycal/internal/model"
	"github.com/azverev/relaycal/internal/recur"
)

const prodID = "-//relaycal//relaycal//EN"

// Export renders one VEVENT per occurrence. Output is deterministic for a
// given input: UIDs derive from the draft title and occurrence index, and
// DTSTAMP is pinned to the seed date.
func Export(draft model.EventDraft, occs []model.Occurrence) ([]byte, error) {
	seed, err := time.Parse(recur.DateFormat, draft.StartDate)
	if err != nil {
		return nil, fmt.Errorf("seed date: %w", err)
	}
	rule, err := recur.RRuleString(draft.Recur, seed)
	if err != nil {
		return nil, fmt.Errorf("encode recurrence rule: %w", err)
	}

	cal := ical.NewCalendar()
	cal.SetProductId(prodID)
	cal.SetMethod(ical.MethodPublish)

	base := slugify(draft.Title)
	for i, occ := range occs {
		ev := cal.AddEvent(fmt.Sprintf("%s-%d@relaycal", base, i))
		ev.SetDtStampTime(seed)
		ev.SetSummary(draft.Title)
		if draft.Content != "" {
			ev.SetDescription(draft.Content)
		}
		if draft.Location != "" {
			ev.SetLocation(draft.Location)
		}

		start, end, allDay, err := occurrenceSpan(occ)
		if err != nil {
			return nil, fmt.Errorf("occurrence %d: %w", i, err)
		}
		if allDay {
			ev.SetAllDayStartAt(start)
			// DTEND is exclusive for all-day events.
			ev.SetAllDayEndAt(end.AddDate(0, 0, 1))
		} else {
			ev.SetStartAt(start)
			ev.SetEndAt(end)
		}

		if i == 0 && rule != "" {
			ev.SetProperty(ical.ComponentPropertyRrule, rule)
		}
	}
	return []byte(cal.Serialize()), nil
}

// occurrenceSpan resolves an occurrence into concrete start/end instants.
// Occurrences without times are all-day.
func occurrenceSpan(occ model.Occurrence) (start, end time.Time, allDay bool, err error) {
	start, err = time.Parse(recur.DateFormat, occ.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	end, err = time.Parse(recur.DateFormat, occ.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	if occ.StartTime == "" {
		return start, end, true, nil
	}
	st, err := time.Parse("15:04", occ.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, false, err
	}
	start = start.Add(time.Duration(st.Hour())*time.Hour + time.Duration(st.Minute())*time.Minute)
	if occ.EndTime != "" {
		et, err := time.Parse("15:04", occ.EndTime)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
		end = end.Add(time.Duration(et.Hour())*time.Hour + time.Duration(et.Minute())*time.Minute)
	} else {
		end = start.Add(time.Hour)
	}
	return start, end, false, nil
}

// slugify reduces a title to a stable UID fragment.
func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case b.Len() > 0 && !strings.HasSuffix(b.String(), "-"):
			b.WriteByte('-')
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
