// Package relay defines ports to the externally supplied network and signing
// capabilities. Transport, signature generation and record persistence live
// behind these interfaces.
package relay

import (
	"context"

	"github.com/azverev/relaycal/internal/model"
)

// Filter selects records by type code, author identity and tag values.
// A record matches when every populated field matches.
type Filter struct {
	TypeCodes []int
	Authors   []string
	// Tags maps a tag name (e.g. "d", "a", "e") to accepted values.
	Tags  map[string][]string
	Limit int
}

// Client is the broadcast/query network capability.
type Client interface {
	// Query returns all known records matching any of the filters. The
	// network has no authoritative "latest"; multiple versions per
	// coordinate are expected.
	Query(ctx context.Context, filters []Filter) ([]model.Record, error)

	// Publish broadcasts a signed record to the network.
	Publish(ctx context.Context, rec model.Record) error
}

// Signer is the local signing capability. It assigns the content hash,
// author identity and signature.
type Signer interface {
	// Sign returns the signed form of draft, or errs.ErrNotAuthenticated
	// when no identity is available.
	Sign(ctx context.Context, draft model.UnsignedRecord) (model.Record, error)
}
