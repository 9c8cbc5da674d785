package records

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"concierge/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBooking() models.CompletedBooking {
	return models.CompletedBooking{
		Date:  "2024-05-02",
		Time:  "15:00",
		Name:  "Jane Doe",
		Email: "jane@doe.com",
		Phone: "+1234567890",
	}
}

func TestSaveWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.csv")
	repo := NewCSVRepository(path)

	require.NoError(t, repo.Save(sampleBooking()))
	require.NoError(t, repo.Save(sampleBooking()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Time,Name,Email,Phone", lines[0])
	assert.Equal(t, 1, strings.Count(string(data), "Date,Time"))
}

func TestSaveRejectsIncompleteSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.csv")
	repo := NewCSVRepository(path)

	b := sampleBooking()
	b.Phone = ""
	err := repo.Save(b)
	require.ErrorIs(t, err, ErrIncompleteBooking)

	// Nothing was written.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestListRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.csv")
	repo := NewCSVRepository(path)

	first := sampleBooking()
	second := sampleBooking()
	second.Name = "Doe, Jane" // comma forces CSV quoting
	second.Email = "doe@example.org"

	require.NoError(t, repo.Save(first))
	require.NoError(t, repo.Save(second))

	got, err := repo.List()
	require.NoError(t, err)
	assert.Equal(t, []models.CompletedBooking{first, second}, got)
}

func TestListMissingFileIsEmpty(t *testing.T) {
	repo := NewCSVRepository(filepath.Join(t.TempDir(), "absent.csv"))
	got, err := repo.List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSaveSurfacesStorageError(t *testing.T) {
	// Parent directory does not exist, so the open fails.
	repo := NewCSVRepository(filepath.Join(t.TempDir(), "missing", "bookings.csv"))
	err := repo.Save(sampleBooking())
	require.Error(t, err)

	var storageErr *StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.NotNil(t, storageErr.Unwrap())
}
