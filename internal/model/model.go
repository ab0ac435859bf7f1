// Package model defines domain entities shared by codecs, services and the cache.
package model

// Reserved type-code range for replaceable records.
const (
	ReplaceableRangeStart = 30000
	ReplaceableRangeEnd   = 40000 // exclusive
)

// Well-known type codes used by the calendar client.
const (
	TypeDateEvent = 31922 // all-day / date-based calendar event
	TypeTimeEvent = 31923 // time-based calendar event
	TypeCalendar  = 31924 // calendar container listing member events
)

// Record is a signed, immutable unit of data as broadcast over the relay network.
// Tags is the flat wire form: each tag is an ordered list of strings, first
// element is the tag name.
type Record struct {
	ID        string // content hash, assigned at signing
	AuthorID  string // signing identity (hex public key)
	TypeCode  int
	CreatedAt int64 // unix seconds
	Content   string
	Tags      [][]string
	Sig       string
}

// UnsignedRecord is a record draft before the signing capability fills in
// ID/AuthorID/Sig. The core only ever builds these; it never mutates a
// signed Record in place.
type UnsignedRecord struct {
	TypeCode  int
	CreatedAt int64
	Content   string
	Tags      [][]string
}

// Coordinate addresses the logical identity of a replaceable record across
// versions: (typeCode, authorId, slug), where slug is the record's d-tag value.
type Coordinate struct {
	TypeCode int
	AuthorID string
	Slug     string
}

// RecurrencePattern enumerates supported recurrence frequencies.
type RecurrencePattern string

const (
	PatternDaily   RecurrencePattern = "daily"
	PatternWeekly  RecurrencePattern = "weekly"
	PatternMonthly RecurrencePattern = "monthly"
)

// TimeMode controls how occurrence times are filled during expansion.
type TimeMode string

const (
	// TimeSingle applies the seed start/end time to every occurrence.
	TimeSingle TimeMode = "single"
	// TimePerOccurrence lets each occurrence carry independently supplied times.
	TimePerOccurrence TimeMode = "perOccurrence"
)

// MonthlyMode is the monthly sub-configuration variant.
type MonthlyMode string

const (
	// MonthlyByDate repeats on the same day-of-month, clipped to month length.
	MonthlyByDate MonthlyMode = "byDate"
)

// SeedPolicy decides what happens when a weekly recurrence's seed date falls
// on a weekday that is not among the selected days.
type SeedPolicy string

const (
	// SeedSnapForward snaps occurrence 0 forward to the first selected weekday.
	SeedSnapForward SeedPolicy = "snap"
	// SeedStrict drops the unmatched seed date; emission starts at the first
	// selected weekday after it.
	SeedStrict SeedPolicy = "strict"
)

// RecurrenceConfig describes how one authored event fans out into occurrences.
type RecurrenceConfig struct {
	Enabled        bool
	Pattern        RecurrencePattern
	Interval       int // >= 1
	MaxOccurrences int // [1, 6]

	// WeeklyDays holds weekday indices (0=Sunday .. 6=Saturday); required
	// non-empty when Pattern is weekly.
	WeeklyDays []int

	// Monthly must be present when Pattern is monthly.
	Monthly *MonthlyConfig

	TimeMode TimeMode

	// SeedPolicy applies to weekly patterns only; zero value means snap.
	SeedPolicy SeedPolicy

	// StartTime/EndTime ("15:04") apply to every occurrence under TimeSingle.
	StartTime string
	EndTime   string

	// PerOccurrenceTimes supplies times per index under TimePerOccurrence;
	// sourced from external form state.
	PerOccurrenceTimes []OccurrenceTime
}

// MonthlyConfig is the monthly sub-configuration.
type MonthlyConfig struct {
	Mode MonthlyMode
}

// OccurrenceTime is an externally supplied per-occurrence time pair.
type OccurrenceTime struct {
	StartTime string
	EndTime   string
}

// Occurrence is one concrete calendar instance produced by expansion.
// Dates use the "2006-01-02" form; times, when present, use "15:04".
// Index 0 is always the seed occurrence.
type Occurrence struct {
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
}

// EventDraft is the authored input for an event series before fan-out.
type EventDraft struct {
	Title     string
	Content   string
	Location  string
	StartDate string
	EndDate   string
	Recur     RecurrenceConfig
}
