package store

import (
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/frete99/frete99-backend/internal/models"
)

// Store holds every user and ride in process memory. A single mutex guards
// both collections and their indexes, so each operation runs as one critical
// section; that is what makes the claim and registration races safe.
type Store struct {
	mu sync.Mutex

	users      map[uint]*models.User
	emailIndex map[string]uint // lowercased email -> user id
	rides      map[uint]*models.Ride

	nextUserID uint
	nextRideID uint

	now func() time.Time
	log *logrus.Logger
}

func New(log *logrus.Logger) *Store {
	if log == nil {
		log = logrus.New()
	}
	return &Store{
		users:      make(map[uint]*models.User),
		emailIndex: make(map[string]uint),
		rides:      make(map[uint]*models.Ride),
		now:        time.Now,
		log:        log,
	}
}

// SetClock overrides the store clock; tests use it to pin receipt years.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// userCopy returns a snapshot so callers never hold a pointer into the store.
func userCopy(u *models.User) *models.User {
	c := *u
	return &c
}

func rideCopy(r *models.Ride) *models.Ride {
	c := *r
	if r.SelectedItems != nil {
		c.SelectedItems = append([]string(nil), r.SelectedItems...)
	}
	if r.DriverID != nil {
		id := *r.DriverID
		c.DriverID = &id
	}
	if r.ClientRating != nil {
		v := *r.ClientRating
		c.ClientRating = &v
	}
	if r.DriverRating != nil {
		v := *r.DriverRating
		c.DriverRating = &v
	}
	return &c
}
