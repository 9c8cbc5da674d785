package records

import (
	"encoding/csv"
	"errors"
	"os"
	"sync"

	"concierge/models"
)

var csvHeader = []string{"Date", "Time", "Name", "Email", "Phone"}

// CSVRepository appends bookings to a human-readable CSV log. The header row
// is written once when the file is created. The mutex serializes the
// check-then-append so concurrently completing sessions cannot interleave.
type CSVRepository struct {
	path string
	mu   sync.Mutex
}

func NewCSVRepository(path string) *CSVRepository {
	return &CSVRepository{path: path}
}

func (r *CSVRepository) Save(b models.CompletedBooking) error {
	if b.Date == "" || b.Time == "" || b.Name == "" || b.Email == "" || b.Phone == "" {
		return ErrIncompleteBooking
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, statErr := os.Stat(r.path)
	exists := statErr == nil

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &StorageError{Op: "open", Err: err}
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if !exists {
		if err := w.Write(csvHeader); err != nil {
			return &StorageError{Op: "write header", Err: err}
		}
	}
	if err := w.Write([]string{b.Date, b.Time, b.Name, b.Email, b.Phone}); err != nil {
		return &StorageError{Op: "write row", Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return &StorageError{Op: "flush", Err: err}
	}
	return nil
}

func (r *CSVRepository) List() ([]models.CompletedBooking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &StorageError{Op: "open", Err: err}
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}

	var bookings []models.CompletedBooking
	for i, row := range rows {
		if i == 0 || len(row) < 5 {
			continue // header
		}
		bookings = append(bookings, models.CompletedBooking{
			Date:  row[0],
			Time:  row[1],
			Name:  row[2],
			Email: row[3],
			Phone: row[4],
		})
	}
	return bookings, nil
}
