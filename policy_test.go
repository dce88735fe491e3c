package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleRows() []PositionedReport {
	return []PositionedReport{
		{Position: 2, Report: Report{InputDate: "2024-01-01", FileNumber: "12", FileYear: 2024, Status: StatusServed, OfficerName: "Alice"}},
		{Position: 3, Report: Report{InputDate: "2024-01-02", FileNumber: "34", FileYear: 2024, Status: StatusNotServed, OfficerName: "Bob"}},
		{Position: 4, Report: Report{InputDate: "2024-01-02", FileNumber: "56", FileYear: 2023, Status: StatusServed, OfficerName: "Alice"}},
	}
}

func TestIsLockedAdminNeverLocked(t *testing.T) {
	for _, row := range sampleRows() {
		assert.False(t, isLocked(row.Report, RoleAdmin, "2024-01-02"))
		assert.False(t, isLocked(row.Report, RoleAdmin, "1999-12-31"))
	}
}

func TestIsLockedOfficerPastDate(t *testing.T) {
	// The record is from yesterday, so the officer is shut out.
	record := Report{InputDate: "2024-01-01", OfficerName: "Alice"}
	assert.True(t, isLocked(record, RoleOfficer, "2024-01-02"))
}

func TestIsLockedOfficerSameDay(t *testing.T) {
	record := Report{InputDate: "2024-01-01", OfficerName: "Alice"}
	assert.False(t, isLocked(record, RoleOfficer, "2024-01-01"))
}

func TestIsLockedOfficerMissingDate(t *testing.T) {
	assert.True(t, isLocked(Report{InputDate: ""}, RoleOfficer, "2024-01-02"))
	assert.True(t, isLocked(Report{InputDate: "01/02/2024"}, RoleOfficer, "2024-01-02"))
}

func TestVisibleRecordsAdminSeesEverything(t *testing.T) {
	rows := sampleRows()
	got := visibleRecords(rows, RoleAdmin, "whoever")
	assert.Equal(t, rows, got)
}

func TestVisibleRecordsOfficerSeesOnlyOwnRows(t *testing.T) {
	// Only Bob's rows come back, in store order.
	got := visibleRecords(sampleRows(), RoleOfficer, "Bob")
	assert.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Position)
	assert.Equal(t, "Bob", got[0].OfficerName)

	got = visibleRecords(sampleRows(), RoleOfficer, "Alice")
	assert.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Position)
	assert.Equal(t, 4, got[1].Position)
}

func TestVisibleRecordsDoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	got := visibleRecords(rows, RoleAdmin, "")
	got[0].FileNumber = "changed"
	assert.Equal(t, "12", rows[0].FileNumber)
}

func TestVisibleRecordsEmptyInput(t *testing.T) {
	assert.Empty(t, visibleRecords(nil, RoleAdmin, ""))
	assert.Empty(t, visibleRecords(nil, RoleOfficer, "Alice"))
	assert.Empty(t, visibleRecords([]PositionedReport{}, RoleOfficer, "Alice"))
}
