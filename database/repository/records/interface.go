package records

import "concierge/models"

// Repository persists completed bookings to the append-only booking log.
type Repository interface {
	// Save appends one completed booking. The snapshot must have all five
	// fields set; ErrIncompleteBooking is returned otherwise.
	Save(models.CompletedBooking) error
	// List reads every booking back in insertion order. A log that does not
	// exist yet yields an empty list, not an error.
	List() ([]models.CompletedBooking, error)
}
