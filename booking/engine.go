package booking

import (
	"context"
	"time"

	"campusreserve/models"
	"github.com/google/uuid"
)

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

const (
	DecisionApproved = "approved"
	DecisionRejected = "rejected"
)

// Store is the persistence boundary for the engine. Implementations must make
// CreateIfFree and ApplyDecision atomic per resource; the engine's own conflict
// check is a pre-validation, not the correctness guarantee.
type Store interface {
	// ListApproved returns the intervals of approved bookings on the resource
	// that intersect [from, to), ordered by start time.
	ListApproved(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]Interval, error)

	// GetResource returns the resource only if it exists and is active.
	GetResource(ctx context.Context, id uuid.UUID) (*models.Resource, error)

	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)

	// CreateIfFree re-runs the conflict check against approved bookings and
	// inserts the booking, both inside one transaction serialized per
	// resource. Returns ErrSlotConflict if the window is taken.
	CreateIfFree(ctx context.Context, b *models.Booking) error

	// ApplyDecision flips a pending booking to the decided status. On
	// approval it also rejects any still-pending bookings on the same
	// resource that overlap the approved window, and returns them. All
	// returned bookings carry their User and Resource associations so
	// callers can notify the requesters.
	ApplyDecision(ctx context.Context, bookingID uuid.UUID, decision string) (*models.Booking, []models.Booking, error)

	// RejectExpiredPending rejects pending bookings whose start time has
	// already passed and returns them, with User and Resource loaded. A
	// booking decided concurrently keeps its terminal status and is not
	// part of the returned set.
	RejectExpiredPending(ctx context.Context, now time.Time) ([]models.Booking, error)
}

// Engine implements the reservation rules: day-scoped availability, the
// half-open overlap check, the pending → approved | rejected state machine,
// and the admin gate on decisions.
type Engine struct {
	store Store
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// Availability returns the approved busy intervals on the resource for the
// calendar day containing day. An empty day yields an empty slice, not an
// error; a store failure means availability is unknown, never "free".
func (e *Engine) Availability(ctx context.Context, resourceID uuid.UUID, day time.Time) ([]Interval, error) {
	window := DayWindow(day)
	busy, err := e.store.ListApproved(ctx, resourceID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	if busy == nil {
		busy = []Interval{}
	}
	return busy, nil
}

// HasConflict reports whether [start, end) overlaps any approved booking on
// the resource. Pending and rejected bookings never block.
func (e *Engine) HasConflict(ctx context.Context, resourceID uuid.UUID, start, end time.Time) (bool, error) {
	proposed := Interval{Start: start, End: end}
	if !proposed.Valid() {
		return false, ErrInvalidInterval
	}

	existing, err := e.store.ListApproved(ctx, resourceID, start, end)
	if err != nil {
		return false, err
	}
	for _, busy := range existing {
		if proposed.Overlaps(busy) {
			return true, nil
		}
	}
	return false, nil
}

// Submit validates and persists a new booking request. The created booking is
// always pending, regardless of the caller's role; admins do not get to
// self-approve through this path.
func (e *Engine) Submit(ctx context.Context, p Principal, resourceID uuid.UUID, start, end time.Time, purpose string) (*models.Booking, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}
	if !(Interval{Start: start, End: end}).Valid() {
		return nil, ErrInvalidInterval
	}

	if _, err := e.store.GetResource(ctx, resourceID); err != nil {
		return nil, err
	}

	conflict, err := e.HasConflict(ctx, resourceID, start, end)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrSlotConflict
	}

	b := &models.Booking{
		UserID:     p.ID,
		ResourceID: resourceID,
		StartTime:  start,
		EndTime:    end,
		Purpose:    purpose,
		Status:     StatusPending,
	}
	if err := e.store.CreateIfFree(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DecisionResult is the outcome of an admin decision. AutoRejected holds
// pending bookings on the same resource that lost the slot when another
// request was approved over them.
type DecisionResult struct {
	Booking      *models.Booking  `json:"booking"`
	AutoRejected []models.Booking `json:"auto_rejected,omitempty"`
}

// Decide transitions a pending booking to approved or rejected. Only admins
// may decide, and a booking is decided exactly once: re-approving an approved
// booking or approving a rejected one fails with ErrInvalidStateTransition.
func (e *Engine) Decide(ctx context.Context, p Principal, bookingID uuid.UUID, decision string) (*DecisionResult, error) {
	if !p.Authenticated() {
		return nil, ErrUnauthorized
	}
	if !p.CanDecide() {
		return nil, ErrForbidden
	}
	if decision != DecisionApproved && decision != DecisionRejected {
		return nil, ErrInvalidStateTransition
	}

	current, err := e.store.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.Status != StatusPending {
		return nil, ErrInvalidStateTransition
	}

	updated, autoRejected, err := e.store.ApplyDecision(ctx, bookingID, decision)
	if err != nil {
		return nil, err
	}
	return &DecisionResult{Booking: updated, AutoRejected: autoRejected}, nil
}

// ExpireStale rejects pending requests whose start time has passed. Run
// periodically; an untouched request for a slot in the past can never be
// meaningfully approved.
func (e *Engine) ExpireStale(ctx context.Context, now time.Time) ([]models.Booking, error) {
	return e.store.RejectExpiredPending(ctx, now)
}
