package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tempReportStore(t *testing.T) *CSVRecordStore {
	t.Helper()
	return NewCSVRecordStore(filepath.Join(t.TempDir(), "laporan.csv"))
}

func TestCSVListMissingFileIsEmpty(t *testing.T) {
	s := tempReportStore(t)

	rows, err := s.ListAll()
	assert.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCSVAppendAndListRoundTrip(t *testing.T) {
	s := tempReportStore(t)

	first := Report{InputDate: "2024-01-01", FileNumber: "12", FileYear: 2024, ServiceTime: "09:00", Status: StatusServed, Notes: "ok", OfficerName: "Alice"}
	second := Report{InputDate: "2024-01-02", FileNumber: "34", FileYear: 2023, ServiceTime: "10:30", Status: StatusNotServed, Notes: "queue, long", OfficerName: "Bob"}
	assert.NoError(t, s.Append(first))
	assert.NoError(t, s.Append(second))

	rows, err := s.ListAll()
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, firstRecordPosition, rows[0].Position)
	assert.Equal(t, firstRecordPosition+1, rows[1].Position)
	assert.Equal(t, first, rows[0].Report)
	assert.Equal(t, second, rows[1].Report)
}

func TestCSVHeaderRowWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laporan.csv")
	s := NewCSVRecordStore(path)
	assert.NoError(t, s.Append(Report{InputDate: "2024-01-01", FileNumber: "12", OfficerName: "Alice"}))

	raw, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), strings.Join(reportHeader, ",")))
}

func TestCSVUpdateFieldsKeepsImmutableColumns(t *testing.T) {
	s := tempReportStore(t)
	assert.NoError(t, s.Append(Report{InputDate: "2024-01-01", FileNumber: "12", FileYear: 2024, Status: StatusServed, OfficerName: "Alice"}))

	err := s.UpdateFields(firstRecordPosition, ReportFields{FileNumber: "13", FileYear: 2022, ServiceTime: "14:00", Status: StatusNotServed, Notes: "fixed"})
	assert.NoError(t, err)

	rows, _ := s.ListAll()
	assert.Equal(t, "2024-01-01", rows[0].InputDate)
	assert.Equal(t, "Alice", rows[0].OfficerName)
	assert.Equal(t, "13", rows[0].FileNumber)
	assert.Equal(t, 2022, rows[0].FileYear)
	assert.Equal(t, StatusNotServed, rows[0].Status)
}

func TestCSVUpdateOutOfRange(t *testing.T) {
	s := tempReportStore(t)
	assert.NoError(t, s.Append(Report{InputDate: "2024-01-01", FileNumber: "12", OfficerName: "Alice"}))

	var persistenceErr *PersistenceError
	assert.ErrorAs(t, s.UpdateFields(firstRecordPosition+1, ReportFields{FileNumber: "13"}), &persistenceErr)
	assert.ErrorAs(t, s.UpdateFields(1, ReportFields{FileNumber: "13"}), &persistenceErr)
	assert.ErrorAs(t, s.Delete(firstRecordPosition+1), &persistenceErr)
}

func TestCSVDeleteShiftsFollowingRows(t *testing.T) {
	s := tempReportStore(t)
	for _, n := range []string{"first", "second", "third"} {
		assert.NoError(t, s.Append(Report{InputDate: "2024-01-01", FileNumber: n, OfficerName: "Alice"}))
	}

	assert.NoError(t, s.Delete(firstRecordPosition))

	rows, _ := s.ListAll()
	assert.Len(t, rows, 2)
	assert.Equal(t, "second", rows[0].FileNumber)
	assert.Equal(t, firstRecordPosition, rows[0].Position)
	assert.Equal(t, "third", rows[1].FileNumber)
}

func TestCSVNoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s := NewCSVRecordStore(filepath.Join(dir, "laporan.csv"))
	assert.NoError(t, s.Append(Report{InputDate: "2024-01-01", FileNumber: "12", OfficerName: "Alice"}))
	assert.NoError(t, s.UpdateFields(firstRecordPosition, ReportFields{FileNumber: "13"}))
	assert.NoError(t, s.Delete(firstRecordPosition))

	entries, err := os.ReadDir(dir)
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "laporan.csv", entries[0].Name())
}

func TestCSVUserStoreRoundTrip(t *testing.T) {
	s := NewCSVUserStore(filepath.Join(t.TempDir(), "users.csv"))

	users, err := s.ListAll()
	assert.NoError(t, err)
	assert.Empty(t, users)

	alice := User{Username: "alice", Password: "rahasia", Role: RoleOfficer, FullName: "Alice"}
	assert.NoError(t, s.Append(alice))
	assert.NoError(t, s.Append(User{Username: "root", Password: "admin", Role: RoleAdmin, FullName: "Admin"}))

	users, err = s.ListAll()
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, alice, users[0])
	assert.Equal(t, RoleAdmin, users[1].Role)
}
