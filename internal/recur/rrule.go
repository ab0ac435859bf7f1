package recur

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/azverev/relaycal/internal/model"
)

// rruleWeekdays maps weekday indices (0=Sunday .. 6=Saturday) to RRULE BYDAY values.
var rruleWeekdays = [...]rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// RRuleString encodes cfg as an RFC 5545 RRULE value for embedding in
// published event records and ICS output. A disabled configuration encodes
// to the empty string.
//
// The monthly day-of-month clipping performed by Expand has no RRULE
// counterpart; the returned rule carries the plain FREQ=MONTHLY form.
func RRuleString(cfg model.RecurrenceConfig, start time.Time) (string, error) {
	if !cfg.Enabled {
		return "", nil
	}
	opt := rrule.ROption{
		Interval: cfg.Interval,
		Count:    cfg.MaxOccurrences,
		Dtstart:  start,
	}
	switch cfg.Pattern {
	case model.PatternWeekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range cfg.WeeklyDays {
			if d >= 0 && d <= 6 {
				opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
			}
		}
	case model.PatternMonthly:
		opt.Freq = rrule.MONTHLY
	default:
		opt.Freq = rrule.DAILY
	}
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return "", err
	}
	// RRULE value only; DTSTART travels separately on the record.
	return r.OrigOptions.RRuleString(), nil
}
