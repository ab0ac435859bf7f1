// Package recur validates recurrence configurations and expands them into
// concrete calendar occurrences.
package recur

import "github.com/azverev/relaycal/internal/model"

// Human-readable validation messages shown next to the recurrence form.
const (
	MsgIntervalTooSmall   = "Interval must be at least 1"
	MsgOccurrencesOutside = "Number of events must be between 1 and 6"
	MsgNoWeekdaySelected  = "Please select at least one day of the week"
	MsgNoMonthlyPattern   = "Please specify a monthly pattern"
)

// MaxOccurrencesLimit caps how many occurrences a single series may fan out to.
const MaxOccurrencesLimit = 6

// Validate checks cfg for internal consistency before expansion. It returns
// every applicable message in a stable order; an empty result means valid.
// Seed dates are not inspected here; date validity is checked at expansion
// time. A disabled configuration is always valid.
func Validate(cfg model.RecurrenceConfig) []string {
	if !cfg.Enabled {
		return nil
	}
	var msgs []string
	if cfg.Interval < 1 {
		msgs = append(msgs, MsgIntervalTooSmall)
	}
	if cfg.MaxOccurrences < 1 || cfg.MaxOccurrences > MaxOccurrencesLimit {
		msgs = append(msgs, MsgOccurrencesOutside)
	}
	if cfg.Pattern == model.PatternWeekly && len(cfg.WeeklyDays) == 0 {
		msgs = append(msgs, MsgNoWeekdaySelected)
	}
	if cfg.Pattern == model.PatternMonthly && cfg.Monthly == nil {
		msgs = append(msgs, MsgNoMonthlyPattern)
	}
	return msgs
}
