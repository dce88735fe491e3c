package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Column layout of the report sheet. Row 1 is this header; the first
// record sits at position 2, matching the hosted sheet this replaces.
var reportHeader = []string{"Tanggal Input", "Nomor Berkas", "Tahun", "Jam Layanan", "Status", "Keterangan", "Petugas"}

var userHeader = []string{"Username", "Password", "Role", "Nama Lengkap"}

// CSVRecordStore keeps the report sheet in a local CSV file. Every
// mutation re-reads the file, applies the change in memory and rewrites
// the whole file through a temp-and-rename cycle, so a crash mid-write
// never leaves a half-written sheet behind. The mutex only serializes
// this process; concurrent processes still race like the sheet did.
type CSVRecordStore struct {
	mu   sync.Mutex
	path string
}

func NewCSVRecordStore(path string) *CSVRecordStore {
	return &CSVRecordStore{path: path}
}

func (s *CSVRecordStore) ListAll() ([]PositionedReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readCSVRows(s.path, len(reportHeader))
	if err != nil {
		return nil, err
	}

	out := make([]PositionedReport, 0, len(rows))
	for i, row := range rows {
		out = append(out, PositionedReport{Position: firstRecordPosition + i, Report: rowToReport(row)})
	}
	return out, nil
}

func (s *CSVRecordStore) Append(r Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readCSVRows(s.path, len(reportHeader))
	if err != nil {
		return err
	}
	rows = append(rows, reportToRow(r))
	return writeCSVFile(s.path, reportHeader, rows)
}

func (s *CSVRecordStore) UpdateFields(position int, fields ReportFields) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readCSVRows(s.path, len(reportHeader))
	if err != nil {
		return err
	}
	idx := position - firstRecordPosition
	if idx < 0 || idx >= len(rows) {
		return &PersistenceError{Op: "update report", Err: fmt.Errorf("no row at position %d", position)}
	}

	row := rows[idx]
	row[1] = fields.FileNumber
	row[2] = strconv.Itoa(fields.FileYear)
	row[3] = fields.ServiceTime
	row[4] = fields.Status
	row[5] = fields.Notes
	return writeCSVFile(s.path, reportHeader, rows)
}

func (s *CSVRecordStore) Delete(position int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readCSVRows(s.path, len(reportHeader))
	if err != nil {
		return err
	}
	idx := position - firstRecordPosition
	if idx < 0 || idx >= len(rows) {
		return &PersistenceError{Op: "delete report", Err: fmt.Errorf("no row at position %d", position)}
	}

	rows = append(rows[:idx], rows[idx+1:]...)
	return writeCSVFile(s.path, reportHeader, rows)
}

// CSVUserStore keeps the user sheet in a local CSV file, one row per
// account, passwords as plain text like the sheet it replaces.
type CSVUserStore struct {
	mu   sync.Mutex
	path string
}

func NewCSVUserStore(path string) *CSVUserStore {
	return &CSVUserStore{path: path}
}

func (s *CSVUserStore) ListAll() ([]User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readCSVRows(s.path, len(userHeader))
	if err != nil {
		return nil, err
	}

	out := make([]User, 0, len(rows))
	for _, row := range rows {
		out = append(out, User{Username: row[0], Password: row[1], Role: row[2], FullName: row[3]})
	}
	return out, nil
}

func (s *CSVUserStore) Append(u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readCSVRows(s.path, len(userHeader))
	if err != nil {
		return err
	}
	rows = append(rows, []string{u.Username, u.Password, u.Role, u.FullName})
	return writeCSVFile(s.path, userHeader, rows)
}

// readCSVRows returns the data rows of a sheet file, header stripped.
// A missing file is an empty sheet, not an error; it gets created on
// the first append.
func readCSVRows(path string, fields int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &PersistenceError{Op: "read sheet", Err: err}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = fields
	all, err := reader.ReadAll()
	if err != nil {
		return nil, &PersistenceError{Op: "read sheet", Err: err}
	}
	if len(all) <= headerRows {
		return nil, nil
	}
	return all[headerRows:], nil
}

func writeCSVFile(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "write sheet", Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &PersistenceError{Op: "write sheet", Err: err}
	}

	writer := csv.NewWriter(tmp)
	writer.Write(header)
	for _, row := range rows {
		writer.Write(row)
	}
	writer.Flush()

	err = writer.Error()
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return &PersistenceError{Op: "write sheet", Err: err}
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &PersistenceError{Op: "write sheet", Err: err}
	}
	return nil
}

func rowToReport(row []string) Report {
	year, _ := strconv.Atoi(row[2])
	return Report{
		InputDate:   row[0],
		FileNumber:  row[1],
		FileYear:    year,
		ServiceTime: row[3],
		Status:      row[4],
		Notes:       row[5],
		OfficerName: row[6],
	}
}

func reportToRow(r Report) []string {
	return []string{r.InputDate, r.FileNumber, strconv.Itoa(r.FileYear), r.ServiceTime, r.Status, r.Notes, r.OfficerName}
}
