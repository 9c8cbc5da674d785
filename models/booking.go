package models

// BookingSlots is the in-progress booking under construction. Slots fill in
// strict order (date, time, name, email, phone); an empty string means the
// slot has not been collected yet.
type BookingSlots struct {
	Date  string `json:"date,omitempty"`  // YYYY-MM-DD
	Time  string `json:"time,omitempty"`  // HH:MM, 24-hour
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"` // digits with optional leading +
}

// Empty reports whether no slot has been filled yet.
func (s BookingSlots) Empty() bool {
	return s == BookingSlots{}
}

// CompletedBooking is an immutable snapshot of a fully filled BookingSlots,
// handed to the record store. All five fields must be non-empty.
type CompletedBooking struct {
	Date  string `json:"date"`
	Time  string `json:"time"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
