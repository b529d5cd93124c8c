// Package normalize holds the pure record reconciliation logic: partial-merge
// writes with meta stamping, the project legacy/plural field pairing, the
// public visible-and-ordered projection, and the two-entity order swap.
// Nothing here performs I/O.
package normalize

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"portfolio/internal/domain"

	"github.com/google/uuid"
)

// timestampLayout matches the ISO-8601 millisecond format the document has
// always been written with.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Timestamp renders t the way entity timestamps are persisted.
func Timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// NewID returns an opaque entity id: base-36 unix milliseconds plus a random
// suffix, so rapid successive calls cannot collide.
func NewID() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return strconv.FormatInt(time.Now().UnixMilli(), 36) + suffix
}

// ReconcileFunc adjusts the merged record after the generic merge. It sees
// the raw incoming body so it can distinguish absent fields from zero values.
// existing is nil on create.
type ReconcileFunc func(existing, incoming, merged map[string]any)

// ForWrite produces the record to persist from an optional existing record
// and an incoming request body. Incoming fields win over existing ones
// (partial merge). New records get an id, createdAt, and defaults for
// visible and order; every write refreshes updatedAt. The id and createdAt
// of an existing record are immutable regardless of what the body carries.
func ForWrite(existing, incoming map[string]any, collectionLen int, reconcile ReconcileFunc, now time.Time) map[string]any {
	merged := make(map[string]any, len(existing)+len(incoming))
	for k, v := range existing {
		merged[k] = v
	}
	for k, v := range incoming {
		merged[k] = v
	}

	stamp := Timestamp(now)
	if existing == nil {
		merged["id"] = NewID()
		merged["createdAt"] = stamp
		if _, ok := incoming["visible"]; !ok {
			merged["visible"] = true
		}
		if _, ok := incoming["order"]; !ok {
			merged["order"] = float64(collectionLen + 1)
		}
	} else {
		merged["id"] = existing["id"]
		merged["createdAt"] = existing["createdAt"]
	}
	merged["updatedAt"] = stamp

	if reconcile != nil {
		reconcile(existing, incoming, merged)
	}

	return merged
}

// entityRef is the pointer-receiver constraint used by the generic helpers:
// every *Skill, *Project, ... exposes the shared meta through domain.Entity.
type entityRef[T any] interface {
	*T
	domain.Entity
}

// PublicView filters a collection to visible entities, sorted ascending by
// order. The sort is explicitly stable: entities sharing an order value keep
// their original collection position.
func PublicView[T any, PT entityRef[T]](items []T) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if PT(&items[i]).Meta().Visible {
			out = append(out, items[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return PT(&out[i]).Meta().Order < PT(&out[j]).Meta().Order
	})
	return out
}

// PublicDocument computes the public projection of the whole document:
// personal info as-is, each collection filtered and sorted.
func PublicDocument(doc *domain.PortfolioDocument) *domain.PortfolioDocument {
	return &domain.PortfolioDocument{
		PersonalInfo:   doc.PersonalInfo,
		Skills:         PublicView(doc.Skills),
		Projects:       PublicView(doc.Projects),
		Experiences:    PublicView(doc.Experiences),
		Education:      PublicView(doc.Education),
		Certifications: PublicView(doc.Certifications),
	}
}

// SwapOrder exchanges the order values of the two entities identified by
// idA and idB, in place, refreshing their updatedAt. It returns the indices
// of the swapped entities. The caller decides which pair is adjacent; this
// only performs the atomic swap. Returns domain.ErrNotFound if either id is
// absent, domain.ErrValidation if the ids are equal.
func SwapOrder[T any, PT entityRef[T]](items []T, idA, idB string, now time.Time) (int, int, error) {
	if idA == idB {
		return 0, 0, domain.ErrValidation
	}

	ia, ib := -1, -1
	for i := range items {
		switch PT(&items[i]).Meta().ID {
		case idA:
			ia = i
		case idB:
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, 0, domain.ErrNotFound
	}

	ma, mb := PT(&items[ia]).Meta(), PT(&items[ib]).Meta()
	ma.Order, mb.Order = mb.Order, ma.Order

	stamp := Timestamp(now)
	ma.UpdatedAt = stamp
	mb.UpdatedAt = stamp

	return ia, ib, nil
}
