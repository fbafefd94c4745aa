package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campusreserve/booking"
	"campusreserve/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingStore implements booking.Store on Postgres. Check-then-insert and
// decision paths run inside a transaction holding a row lock on the resource,
// which serializes them per resource.
type BookingStore struct {
	db *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

func storeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return booking.ErrNotFound
	}
	return fmt.Errorf("%w: %v", booking.ErrStoreUnavailable, err)
}

func (s *BookingStore) ListApproved(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]booking.Interval, error) {
	var rows []models.Booking
	err := s.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where("resource_id = ? AND status = ?", resourceID, booking.StatusApproved).
		Where("start_time < ? AND end_time > ?", to, from).
		Order("start_time asc").
		Find(&rows).Error
	if err != nil {
		return nil, storeErr(err)
	}

	intervals := make([]booking.Interval, 0, len(rows))
	for _, row := range rows {
		intervals = append(intervals, booking.Interval{Start: row.StartTime, End: row.EndTime})
	}
	return intervals, nil
}

func (s *BookingStore) GetResource(ctx context.Context, id uuid.UUID) (*models.Resource, error) {
	var resource models.Resource
	err := s.db.WithContext(ctx).
		First(&resource, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return &resource, nil
}

func (s *BookingStore) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Resource").
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, storeErr(err)
	}
	return &b, nil
}

func (s *BookingStore) CreateIfFree(ctx context.Context, b *models.Booking) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the resource row so concurrent submissions for the same
		// resource cannot both pass the overlap count.
		var resource models.Resource
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&resource, "id = ?", b.ResourceID).Error; err != nil {
			return err
		}

		var overlapping int64
		if err := tx.Model(&models.Booking{}).
			Where("resource_id = ? AND status = ?", b.ResourceID, booking.StatusApproved).
			Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
			Count(&overlapping).Error; err != nil {
			return err
		}
		if overlapping > 0 {
			return booking.ErrSlotConflict
		}

		return tx.Create(b).Error
	})
	if err != nil {
		if errors.Is(err, booking.ErrSlotConflict) {
			return booking.ErrSlotConflict
		}
		return storeErr(err)
	}
	return nil
}

func (s *BookingStore) ApplyDecision(ctx context.Context, bookingID uuid.UUID, decision string) (*models.Booking, []models.Booking, error) {
	var updated models.Booking
	var autoRejected []models.Booking

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("User").Preload("Resource").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&updated, "id = ?", bookingID).Error; err != nil {
			return err
		}
		if updated.Status != booking.StatusPending {
			return booking.ErrInvalidStateTransition
		}

		// Hold the resource row for the same reason CreateIfFree does.
		var resource models.Resource
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&resource, "id = ?", updated.ResourceID).Error; err != nil {
			return err
		}

		updated.Status = decision
		if err := tx.Model(&models.Booking{}).
			Where("id = ?", updated.ID).
			Update("status", decision).Error; err != nil {
			return err
		}

		if decision != booking.StatusApproved {
			return nil
		}

		// The approved window is now authoritative occupancy; pending
		// requests that overlap it can never be approved, so reject them.
		if err := tx.Preload("User").Preload("Resource").
			Where("resource_id = ? AND status = ? AND id <> ?", updated.ResourceID, booking.StatusPending, updated.ID).
			Where("start_time < ? AND end_time > ?", updated.EndTime, updated.StartTime).
			Find(&autoRejected).Error; err != nil {
			return err
		}
		if len(autoRejected) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(autoRejected))
		for i := range autoRejected {
			ids = append(ids, autoRejected[i].ID)
			autoRejected[i].Status = booking.StatusRejected
		}
		return tx.Model(&models.Booking{}).
			Where("id IN ? AND status = ?", ids, booking.StatusPending).
			Update("status", booking.StatusRejected).Error
	})
	if err != nil {
		if errors.Is(err, booking.ErrInvalidStateTransition) {
			return nil, nil, booking.ErrInvalidStateTransition
		}
		return nil, nil, storeErr(err)
	}
	return &updated, autoRejected, nil
}

func (s *BookingStore) RejectExpiredPending(ctx context.Context, now time.Time) ([]models.Booking, error) {
	var expired []models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the candidate rows so a concurrent decision cannot flip one
		// to a terminal status between this read and the update below.
		if err := tx.Preload("User").Preload("Resource").
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("status = ? AND start_time < ?", booking.StatusPending, now).
			Find(&expired).Error; err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}

		ids := make([]uuid.UUID, 0, len(expired))
		for i := range expired {
			ids = append(ids, expired[i].ID)
			expired[i].Status = booking.StatusRejected
		}
		return tx.Model(&models.Booking{}).
			Where("id IN ? AND status = ?", ids, booking.StatusPending).
			Update("status", booking.StatusRejected).Error
	})
	if err != nil {
		return nil, storeErr(err)
	}
	return expired, nil
}
