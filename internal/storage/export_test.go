package storage

import "time"

// WithClock fixes the time source and id generator for tests.
func (s *Storage) WithClock(now func() time.Time, newID func() string) *Storage {
	s.timeNow = now
	s.newID = newID
	return s
}
