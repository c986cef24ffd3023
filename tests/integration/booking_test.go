//go:build integration

package integration

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venuebook/venue-service/internal/daterange"
	"github.com/venuebook/venue-service/internal/models"
	"github.com/venuebook/venue-service/internal/repository"
	"github.com/venuebook/venue-service/internal/service"
	"gorm.io/gorm"
)

func createTestVenue(t *testing.T, name string, capacity int) *models.Venue {
	t.Helper()
	venue := &models.Venue{
		OwnerID:  "owner-1",
		Name:     name,
		Capacity: capacity,
		Price:    1200,
	}
	require.NoError(t, testDB.Create(venue).Error)
	return venue
}

func openDays(t *testing.T, venueID uint, from string, n int) {
	t.Helper()
	day, err := daterange.ParseDay(from)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		require.NoError(t, testDB.Create(&models.AvailableDay{
			VenueID: venueID,
			Date:    day.AddDate(0, 0, i),
		}).Error)
	}
}

func newBookingService() service.BookingService {
	return service.NewBookingService(
		repository.NewRentalRepository(testDB),
		repository.NewVenueRepository(testDB),
		repository.NewAvailabilityRepository(testDB),
		nil,
	)
}

// futureDay returns a YYYY-MM-DD string n days from now, so tests never
// trip the date-in-past check.
func futureDay(n int) string {
	return time.Now().UTC().AddDate(0, 0, n).Format(daterange.Layout)
}

func TestCreateRental_FullFlow(t *testing.T) {
	cleanTables()
	venue := createTestVenue(t, "Riverside Hall", 100)
	openDays(t, venue.ID, futureDay(10), 5)
	svc := newBookingService()

	rental, err := svc.CreateRental(t.Context(), venue.ID, "user-1", futureDay(10), futureDay(14))
	require.NoError(t, err)
	assert.Equal(t, venue.ID, rental.VenueID)
	assert.Equal(t, "user-1", rental.UserID)

	var count int64
	testDB.Model(&models.Rental{}).Where("venue_id = ?", venue.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateRental_ReportsMissingDays(t *testing.T) {
	cleanTables()
	venue := createTestVenue(t, "Riverside Hall", 100)
	// Days 10..13 open, day 14 missing
	openDays(t, venue.ID, futureDay(10), 4)
	svc := newBookingService()

	_, err := svc.CreateRental(t.Context(), venue.ID, "user-1", futureDay(10), futureDay(14))

	var unavailable *service.DatesUnavailableError
	require.ErrorAs(t, err, &unavailable)
	require.Len(t, unavailable.MissingDays, 1)
	assert.Equal(t, futureDay(14), unavailable.MissingDays[0].Format(daterange.Layout))

	var count int64
	testDB.Model(&models.Rental{}).Count(&count)
	assert.Zero(t, count, "failed admission must leave no partial writes")
}

func TestCreateRental_RejectsOverlap(t *testing.T) {
	cleanTables()
	venue := createTestVenue(t, "Riverside Hall", 100)
	openDays(t, venue.ID, futureDay(10), 10)
	svc := newBookingService()

	_, err := svc.CreateRental(t.Context(), venue.ID, "user-1", futureDay(10), futureDay(14))
	require.NoError(t, err)

	// Shares the boundary day with the existing rental
	_, err = svc.CreateRental(t.Context(), venue.ID, "user-2", futureDay(14), futureDay(16))
	var overlap *daterange.OverlapError
	require.ErrorAs(t, err, &overlap)

	// Adjacent, no shared day
	_, err = svc.CreateRental(t.Context(), venue.ID, "user-2", futureDay(15), futureDay(17))
	require.NoError(t, err)
}

func TestCreateRental_RejectsPastStart(t *testing.T) {
	cleanTables()
	venue := createTestVenue(t, "Riverside Hall", 100)
	svc := newBookingService()

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(daterange.Layout)
	_, err := svc.CreateRental(t.Context(), venue.ID, "user-1", yesterday, futureDay(3))
	assert.ErrorIs(t, err, daterange.ErrDateInPast)
}

func TestCreateRental_VenueNotFound(t *testing.T) {
	cleanTables()
	svc := newBookingService()

	_, err := svc.CreateRental(t.Context(), 9999, "user-1", futureDay(10), futureDay(12))
	assert.ErrorIs(t, err, service.ErrVenueNotFound)
}

// 50 users fight over one available day: exactly one rental
// may be committed.
func TestConcurrentBooking_SingleDay(t *testing.T) {
	cleanTables()
	venue := createTestVenue(t, "Riverside Hall", 100)
	openDays(t, venue.ID, futureDay(10), 1)
	svc := newBookingService()

	day := futureDay(10)
	totalUsers := 50
	var wg sync.WaitGroup
	errs := make(chan error, totalUsers)

	wg.Add(totalUsers)
	for i := 0; i < totalUsers; i++ {
		go func(userIdx int) {
			defer wg.Done()
			_, err := svc.CreateRental(t.Context(), venue.ID, fmt.Sprintf("user-%03d", userIdx), day, day)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	succeeded, conflicted := 0, 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var overlap *daterange.OverlapError
		var unavailable *service.DatesUnavailableError
		if errors.As(err, &overlap) || errors.As(err, &unavailable) {
			conflicted++
		} else {
			t.Errorf("unexpected error kind: %v", err)
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one booker may win the day")
	assert.Equal(t, 49, conflicted)

	var count int64
	testDB.Model(&models.Rental{}).Where("venue_id = ?", venue.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUpdateRental_ExcludesOwnRange(t *testing.T) {
	cleanTables()
	venue := createTestVenue(t, "Riverside Hall", 100)
	openDays(t, venue.ID, futureDay(10), 10)
	svc := newBookingService()

	rental, err := svc.CreateRental(t.Context(), venue.ID, "user-1", futureDay(10), futureDay(14))
	require.NoError(t, err)

	// Shifting by one day intersects the rental's own prior range; that
	// must not count as a collision.
	updated, err := svc.UpdateRental(t.Context(), rental.ID, futureDay(11), futureDay(15))
	require.NoError(t, err)
	assert.Equal(t, futureDay(11), updated.Range().Start.Format(daterange.Layout))

	// But collisions with other rentals still apply.
	_, err = svc.CreateRental(t.Context(), venue.ID, "user-2", futureDay(17), futureDay(19))
	require.NoError(t, err)

	_, err = svc.UpdateRental(t.Context(), rental.ID, futureDay(16), futureDay(18))
	var overlap *daterange.OverlapError
	assert.ErrorAs(t, err, &overlap)
}

func TestUpdateRental_ChecksAvailability(t *testing.T) {
	cleanTables()
	venue := createTestVenue(t, "Riverside Hall", 100)
	openDays(t, venue.ID, futureDay(10), 5)
	svc := newBookingService()

	rental, err := svc.CreateRental(t.Context(), venue.ID, "user-1", futureDay(10), futureDay(12))
	require.NoError(t, err)

	// Day 15 was never opened
	_, err = svc.UpdateRental(t.Context(), rental.ID, futureDay(13), futureDay(15))
	var unavailable *service.DatesUnavailableError
	require.ErrorAs(t, err, &unavailable)

	// Rental keeps its original dates
	kept, err := svc.GetRental(t.Context(), rental.ID)
	require.NoError(t, err)
	assert.Equal(t, futureDay(10), kept.Range().Start.Format(daterange.Layout))
}

func TestCancelRental_DoesNotRestoreAvailability(t *testing.T) {
	cleanTables()
	venue := createTestVenue(t, "Riverside Hall", 100)
	openDays(t, venue.ID, futureDay(10), 3)
	svc := newBookingService()

	rental, err := svc.CreateRental(t.Context(), venue.ID, "user-1", futureDay(10), futureDay(12))
	require.NoError(t, err)

	require.NoError(t, svc.CancelRental(t.Context(), rental.ID))

	_, err = svc.GetRental(t.Context(), rental.ID)
	assert.ErrorIs(t, err, service.ErrRentalNotFound)

	// Availability and rentals are independent ledgers: the days stay as
	// the owner left them, no more and no less.
	var days int64
	testDB.Model(&models.AvailableDay{}).Where("venue_id = ?", venue.ID).Count(&days)
	assert.Equal(t, int64(3), days)

	// The freed range can be booked again since the days are still open.
	_, err = svc.CreateRental(t.Context(), venue.ID, "user-2", futureDay(10), futureDay(12))
	assert.NoError(t, err)
}

// Updating or cancelling a rental that was cancelled underneath us must
// report not-found, not silently succeed.
func TestRental_GoneBetweenReadAndWrite(t *testing.T) {
	cleanTables()
	venue := createTestVenue(t, "Riverside Hall", 100)
	openDays(t, venue.ID, futureDay(10), 10)
	svc := newBookingService()

	rental, err := svc.CreateRental(t.Context(), venue.ID, "user-1", futureDay(10), futureDay(12))
	require.NoError(t, err)
	require.NoError(t, svc.CancelRental(t.Context(), rental.ID))

	_, err = svc.UpdateRental(t.Context(), rental.ID, futureDay(13), futureDay(15))
	assert.ErrorIs(t, err, service.ErrRentalNotFound)

	err = svc.CancelRental(t.Context(), rental.ID)
	assert.ErrorIs(t, err, service.ErrRentalNotFound)

	// The repository itself reports zero-row writes as not-found.
	rentalRepo := repository.NewRentalRepository(testDB)
	gone := &models.Rental{ID: rental.ID, StartDate: rental.StartDate, EndDate: rental.EndDate}
	err = rentalRepo.UpdateDates(t.Context(), rentalRepo.GetDB(), gone)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	err = rentalRepo.Delete(t.Context(), rentalRepo.GetDB(), rental.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOpenDay_Idempotent(t *testing.T) {
	cleanTables()
	venue := createTestVenue(t, "Riverside Hall", 100)
	availSvc := service.NewAvailabilityService(
		repository.NewAvailabilityRepository(testDB),
		repository.NewVenueRepository(testDB),
	)

	day := futureDay(10)
	require.NoError(t, availSvc.OpenDay(t.Context(), venue.ID, day))
	require.NoError(t, availSvc.OpenDay(t.Context(), venue.ID, day), "re-opening must be a no-op")

	var count int64
	testDB.Model(&models.AvailableDay{}).Where("venue_id = ?", venue.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, availSvc.CloseDay(t.Context(), venue.ID, day))
	require.NoError(t, availSvc.CloseDay(t.Context(), venue.ID, day), "re-closing must be a no-op")

	testDB.Model(&models.AvailableDay{}).Where("venue_id = ?", venue.ID).Count(&count)
	assert.Zero(t, count)
}
