package main

import (
	"fmt"
	"sync"
)

// MemoryRecordStore keeps the sheet in process memory. It backs demo
// deployments and the tests; the position math matches the file and
// database stores exactly.
type MemoryRecordStore struct {
	mu      sync.Mutex
	reports []Report
}

func NewMemoryRecordStore() *MemoryRecordStore {
	return &MemoryRecordStore{}
}

func (s *MemoryRecordStore) ListAll() ([]PositionedReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]PositionedReport, 0, len(s.reports))
	for i, r := range s.reports {
		out = append(out, PositionedReport{Position: firstRecordPosition + i, Report: r})
	}
	return out, nil
}

func (s *MemoryRecordStore) Append(r Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reports = append(s.reports, r)
	return nil
}

func (s *MemoryRecordStore) UpdateFields(position int, fields ReportFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := position - firstRecordPosition
	if idx < 0 || idx >= len(s.reports) {
		return &PersistenceError{Op: "update report", Err: fmt.Errorf("no row at position %d", position)}
	}

	r := &s.reports[idx]
	r.FileNumber = fields.FileNumber
	r.FileYear = fields.FileYear
	r.ServiceTime = fields.ServiceTime
	r.Status = fields.Status
	r.Notes = fields.Notes
	return nil
}

func (s *MemoryRecordStore) Delete(position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := position - firstRecordPosition
	if idx < 0 || idx >= len(s.reports) {
		return &PersistenceError{Op: "delete report", Err: fmt.Errorf("no row at position %d", position)}
	}

	s.reports = append(s.reports[:idx], s.reports[idx+1:]...)
	return nil
}

type MemoryUserStore struct {
	mu    sync.Mutex
	users []User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{}
}

func (s *MemoryUserStore) ListAll() ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryUserStore) Append(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = append(s.users, u)
	return nil
}
