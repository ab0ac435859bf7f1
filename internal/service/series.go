package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/azverev/relaycal/internal/model"
	"github.com/azverev/relaycal/internal/recur"
)

// PublishSeries validates the draft's recurrence configuration, expands it
// into concrete occurrences and publishes one event record per occurrence.
// The first failure aborts the fan-out and is returned together with the
// records already accepted; the network is append-only, so those stay.
func (s *CalendarImpl) PublishSeries(ctx context.Context, draft model.EventDraft) ([]model.Record, error) {
	if msgs := recur.Validate(draft.Recur); len(msgs) > 0 {
		return nil, fmt.Errorf("recurrence config: %s", strings.Join(msgs, "; "))
	}
	occs, err := recur.Expand(draft.StartDate, draft.EndDate, draft.Recur)
	if err != nil {
		return nil, err
	}

	seed, _ := time.Parse(recur.DateFormat, draft.StartDate)
	rule, err := recur.RRuleString(draft.Recur, seed)
	if err != nil {
		return nil, fmt.Errorf("encode recurrence rule: %w", err)
	}

	createdAt := s.now().Unix()
	published := make([]model.Record, 0, len(occs))
	for i, occ := range occs {
		rec, err := s.publish(ctx, occurrenceDraft(draft, occ, rule, i, createdAt))
		if err != nil {
			return published, fmt.Errorf("occurrence %d: %w", i, err)
		}
		published = append(published, rec)
	}
	return published, nil
}

// occurrenceDraft builds the unsigned event record for one occurrence. The
// seed occurrence additionally carries the series' RRULE for interop.
func occurrenceDraft(draft model.EventDraft, occ model.Occurrence, rule string, index int, createdAt int64) model.UnsignedRecord {
	typeCode := model.TypeDateEvent
	wire := [][]string{
		{"d", uuid.Must(uuid.NewV4()).String()},
		{"title", draft.Title},
		{"start", occ.StartDate},
		{"end", occ.EndDate},
	}
	if occ.StartTime != "" {
		typeCode = model.TypeTimeEvent
		wire = append(wire, []string{"start_time", occ.StartTime})
		if occ.EndTime != "" {
			wire = append(wire, []string{"end_time", occ.EndTime})
		}
	}
	if draft.Location != "" {
		wire = append(wire, []string{"location", draft.Location})
	}
	if index == 0 && rule != "" {
		wire = append(wire, []string{"rrule", rule})
	}
	return model.UnsignedRecord{
		TypeCode:  typeCode,
		CreatedAt: createdAt,
		Content:   draft.Content,
		Tags:      wire,
	}
}
