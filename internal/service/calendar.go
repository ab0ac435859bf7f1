// Package service contains application services for calendar membership and
// event series fan-out.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/azverev/relaycal/internal/errs"
	"github.com/azverev/relaycal/internal/model"
	"github.com/azverev/relaycal/internal/relay"
	"github.com/azverev/relaycal/internal/tags"
)

// Calendar defines mutation operations over calendar container records.
type Calendar interface {
	// AddMember republishes the calendar at cal with ref appended.
	AddMember(ctx context.Context, cal model.Coordinate, ref tags.Reference) (model.Record, error)
	// RemoveMember republishes the calendar at cal with ref removed.
	RemoveMember(ctx context.Context, cal model.Coordinate, ref tags.Reference) (model.Record, error)
	// FetchLatest returns the most recent record version at cal.
	FetchLatest(ctx context.Context, cal model.Coordinate) (model.Record, error)
	// PublishSeries fans an authored event draft out into occurrence records.
	PublishSeries(ctx context.Context, draft model.EventDraft) ([]model.Record, error)
}

// Timeouts bounds the two network suspension points of a mutation attempt.
type Timeouts struct {
	Query   time.Duration
	Publish time.Duration
}

const defaultTimeout = 5 * time.Second

type CalendarImpl struct {
	client   relay.Client
	signer   relay.Signer
	timeouts Timeouts
	now      func() time.Time
}

// NewCalendar constructs Calendar with bounded network timeouts.
func NewCalendar(client relay.Client, signer relay.Signer, t Timeouts) *CalendarImpl {
	if t.Query <= 0 {
		t.Query = defaultTimeout
	}
	if t.Publish <= 0 {
		t.Publish = defaultTimeout
	}
	return &CalendarImpl{client: client, signer: signer, timeouts: t, now: time.Now}
}

// AddMember runs the read-modify-republish protocol with a membership addition.
func (s *CalendarImpl) AddMember(ctx context.Context, cal model.Coordinate, ref tags.Reference) (model.Record, error) {
	return s.mutate(ctx, cal, func(wire [][]string) ([][]string, error) {
		return tags.ComputeAddition(wire, ref)
	})
}

// RemoveMember runs the read-modify-republish protocol with a membership removal.
func (s *CalendarImpl) RemoveMember(ctx context.Context, cal model.Coordinate, ref tags.Reference) (model.Record, error) {
	return s.mutate(ctx, cal, func(wire [][]string) ([][]string, error) {
		return tags.ComputeRemoval(wire, ref)
	})
}

// mutate fetches the latest container version, derives the new tag list and
// republishes a full fresh record. There is no retry: a failed attempt is
// re-initiated by the caller and re-derives everything from fetched truth.
//
// Two concurrent writers against the same coordinate both get accepted by the
// network; the selection rule makes whichever record sorts latest win at
// whole-record granularity. That last-write-wins race is a property of the
// network's data model and is deliberately left in place.
func (s *CalendarImpl) mutate(ctx context.Context, cal model.Coordinate, compute func([][]string) ([][]string, error)) (model.Record, error) {
	current, err := s.FetchLatest(ctx, cal)
	if err != nil {
		return model.Record{}, err
	}

	newTags, err := compute(current.Tags)
	if err != nil {
		// AlreadyPresent / NotPresent are terminal: the container already
		// reflects user intent.
		return model.Record{}, err
	}

	draft := model.UnsignedRecord{
		TypeCode:  current.TypeCode,
		CreatedAt: s.now().Unix(),
		Content:   current.Content,
		Tags:      newTags,
	}
	return s.publish(ctx, draft)
}

// FetchLatest queries the network for all versions at cal and selects the
// one with the greatest CreatedAt, ties broken by lexicographically greatest
// ID. It fails with errs.ErrContainerNotFound when nothing returns within
// the query timeout.
func (s *CalendarImpl) FetchLatest(ctx context.Context, cal model.Coordinate) (model.Record, error) {
	qctx, cancel := context.WithTimeout(ctx, s.timeouts.Query)
	defer cancel()

	recs, err := s.client.Query(qctx, []relay.Filter{{
		TypeCodes: []int{cal.TypeCode},
		Authors:   []string{cal.AuthorID},
		Tags:      map[string][]string{"d": {cal.Slug}},
	}})
	switch {
	case ctx.Err() != nil:
		return model.Record{}, fmt.Errorf("%w: fetch %d:%s:%s", errs.ErrCancelled, cal.TypeCode, cal.AuthorID, cal.Slug)
	case errors.Is(err, context.DeadlineExceeded):
		return model.Record{}, fmt.Errorf("%w: %d:%s:%s", errs.ErrContainerNotFound, cal.TypeCode, cal.AuthorID, cal.Slug)
	case err != nil:
		return model.Record{}, fmt.Errorf("fetch container: %w", err)
	case len(recs) == 0:
		return model.Record{}, fmt.Errorf("%w: %d:%s:%s", errs.ErrContainerNotFound, cal.TypeCode, cal.AuthorID, cal.Slug)
	}
	return latest(recs), nil
}

// publish signs the draft and broadcasts it within the publish timeout.
func (s *CalendarImpl) publish(ctx context.Context, draft model.UnsignedRecord) (model.Record, error) {
	signed, err := s.signer.Sign(ctx, draft)
	if err != nil {
		return model.Record{}, fmt.Errorf("sign record: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, s.timeouts.Publish)
	defer cancel()

	if err := s.client.Publish(pctx, signed); err != nil {
		if ctx.Err() != nil {
			return model.Record{}, fmt.Errorf("%w: publish %s", errs.ErrCancelled, signed.ID)
		}
		return model.Record{}, fmt.Errorf("%w: %v", errs.ErrPublishFailed, err)
	}
	return signed, nil
}

// latest implements the deterministic version selection rule.
func latest(recs []model.Record) model.Record {
	best := recs[0]
	for _, r := range recs[1:] {
		if r.CreatedAt > best.CreatedAt || (r.CreatedAt == best.CreatedAt && r.ID > best.ID) {
			best = r
		}
	}
	return best
}
