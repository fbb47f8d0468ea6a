package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/seolens/seolens/internal/model"
)

// ErrNotFound is returned when a scan record does not exist.
var ErrNotFound = errors.New("scan not found")

// ScanStore is an in-memory persistence store for finished scans and per-user
// quota counters. Safe for concurrent use.
type ScanStore struct {
	mu      sync.RWMutex
	records map[string]*model.ScanRecord
	quota   map[string]int
}

// NewScanStore returns an empty ScanStore.
func NewScanStore() *ScanStore {
	return &ScanStore{
		records: make(map[string]*model.ScanRecord),
		quota:   make(map[string]int),
	}
}

// Save stores the record under a fresh id and returns it. The record's ID
// field is left to the caller; the store is the source of truth for ids.
func (s *ScanStore) Save(_ context.Context, record *model.ScanRecord) (string, error) {
	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *record
	stored.ID = id
	s.records[id] = &stored
	return id, nil
}

// Get returns the record stored under id.
func (s *ScanStore) Get(_ context.Context, id string) (*model.ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}

// IncrementScanQuota bumps the scan counter for userID.
func (s *ScanStore) IncrementScanQuota(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quota[userID]++
	return nil
}

// QuotaUsed returns how many scans userID has consumed.
func (s *ScanStore) QuotaUsed(_ context.Context, userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.quota[userID]
}
