// Package navstate carries in-memory state between views of one browser
// session: the record list the list view rendered and the last captured
// photo. Nothing here is persisted; a restart loses it, the same way a page
// reload drops client-side navigation state.
package navstate

import (
	"sync"
	"time"

	"employee-portal/internal/capture"
	"employee-portal/models"
)

type entry struct {
	employees []models.Employee
	photo     *capture.Image
	touched   time.Time
}

type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
	now     func() time.Time
}

func NewStore() *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// PutEmployees replaces the record list remembered for key.
func (s *Store) PutEmployees(key string, employees []models.Employee) {
	if key == "" {
		return
	}
	copied := make([]models.Employee, len(employees))
	copy(copied, employees)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entryLocked(key).employees = copied
}

// Employee returns the record at index idx of the last list rendered for key.
// A read counts as activity for Prune.
func (s *Store) Employee(key string, idx int) (models.Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return models.Employee{}, false
	}
	e.touched = s.now()
	if idx < 0 || idx >= len(e.employees) {
		return models.Employee{}, false
	}
	return e.employees[idx], true
}

// PutPhoto stores a captured image for key, replacing any earlier one.
func (s *Store) PutPhoto(key string, img capture.Image) {
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entryLocked(key).photo = &img
}

// TakePhoto returns the captured image for key and forgets it.
func (s *Store) TakePhoto(key string) (capture.Image, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.photo == nil {
		return capture.Image{}, false
	}
	img := *e.photo
	e.photo = nil
	return img, true
}

// Clear drops everything held for key.
func (s *Store) Clear(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Prune drops state for sessions not used within maxIdle and returns
// how many were dropped. Browser sessions end without telling the server.
func (s *Store) Prune(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for key, e := range s.entries {
		if e.touched.Before(cutoff) {
			delete(s.entries, key)
			pruned++
		}
	}
	return pruned
}

// Len is the number of browser sessions with state.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) entryLocked(key string) *entry {
	e, ok := s.entries[key]
	if !ok {
		e = &entry{}
		s.entries[key] = e
	}
	e.touched = s.now()
	return e
}
