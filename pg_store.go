package main

import (
	"database/sql"
	"fmt"
)

// openPG connects to Postgres and makes sure the tables exist. The
// reports table carries an internal seq serial whose only job is to
// keep rows in insertion order; the physical position of a row is its
// rank in that order, offset by the header row.
func openPG(url string) (*sql.DB, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	return db, nil
}

func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			seq BIGSERIAL PRIMARY KEY,
			input_date TEXT NOT NULL,
			file_number TEXT NOT NULL,
			file_year INT NOT NULL,
			service_time TEXT NOT NULL,
			status TEXT NOT NULL,
			notes TEXT NOT NULL,
			officer_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password TEXT NOT NULL,
			role TEXT NOT NULL,
			full_name TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

type PGRecordStore struct {
	db *sql.DB
}

func NewPGRecordStore(db *sql.DB) *PGRecordStore {
	return &PGRecordStore{db: db}
}

func (s *PGRecordStore) ListAll() ([]PositionedReport, error) {
	rows, err := s.db.Query("SELECT input_date, file_number, file_year, service_time, status, notes, officer_name FROM reports ORDER BY seq")
	if err != nil {
		return nil, &PersistenceError{Op: "list reports", Err: err}
	}
	defer rows.Close()

	var out []PositionedReport
	position := firstRecordPosition
	for rows.Next() {
		var r Report
		if err := rows.Scan(&r.InputDate, &r.FileNumber, &r.FileYear, &r.ServiceTime, &r.Status, &r.Notes, &r.OfficerName); err != nil {
			return nil, &PersistenceError{Op: "list reports", Err: err}
		}
		out = append(out, PositionedReport{Position: position, Report: r})
		position++
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "list reports", Err: err}
	}
	return out, nil
}

func (s *PGRecordStore) Append(r Report) error {
	_, err := s.db.Exec("INSERT INTO reports (input_date, file_number, file_year, service_time, status, notes, officer_name) VALUES ($1, $2, $3, $4, $5, $6, $7)",
		r.InputDate, r.FileNumber, r.FileYear, r.ServiceTime, r.Status, r.Notes, r.OfficerName)
	if err != nil {
		return &PersistenceError{Op: "append report", Err: err}
	}
	return nil
}

// seqAt maps a physical position to the row's internal sequence key.
// The mapping is stale as soon as any row before it is deleted, so
// callers resolve it immediately before every UPDATE or DELETE.
func (s *PGRecordStore) seqAt(position int) (int64, error) {
	offset := position - firstRecordPosition
	if offset < 0 {
		return 0, &PersistenceError{Op: "resolve position", Err: fmt.Errorf("no row at position %d", position)}
	}

	var seq int64
	err := s.db.QueryRow("SELECT seq FROM reports ORDER BY seq OFFSET $1 LIMIT 1", offset).Scan(&seq)
	if err == sql.ErrNoRows {
		return 0, &PersistenceError{Op: "resolve position", Err: fmt.Errorf("no row at position %d", position)}
	}
	if err != nil {
		return 0, &PersistenceError{Op: "resolve position", Err: err}
	}
	return seq, nil
}

func (s *PGRecordStore) UpdateFields(position int, fields ReportFields) error {
	seq, err := s.seqAt(position)
	if err != nil {
		return err
	}
	_, err = s.db.Exec("UPDATE reports SET file_number = $1, file_year = $2, service_time = $3, status = $4, notes = $5 WHERE seq = $6",
		fields.FileNumber, fields.FileYear, fields.ServiceTime, fields.Status, fields.Notes, seq)
	if err != nil {
		return &PersistenceError{Op: "update report", Err: err}
	}
	return nil
}

func (s *PGRecordStore) Delete(position int) error {
	seq, err := s.seqAt(position)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM reports WHERE seq = $1", seq); err != nil {
		return &PersistenceError{Op: "delete report", Err: err}
	}
	return nil
}

type PGUserStore struct {
	db *sql.DB
}

func NewPGUserStore(db *sql.DB) *PGUserStore {
	return &PGUserStore{db: db}
}

func (s *PGUserStore) ListAll() ([]User, error) {
	rows, err := s.db.Query("SELECT username, password, role, full_name FROM users ORDER BY full_name")
	if err != nil {
		return nil, &PersistenceError{Op: "list users", Err: err}
	}
	defer rows.Close()

	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.Username, &u.Password, &u.Role, &u.FullName); err != nil {
			return nil, &PersistenceError{Op: "list users", Err: err}
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "list users", Err: err}
	}
	return out, nil
}

func (s *PGUserStore) Append(u User) error {
	_, err := s.db.Exec("INSERT INTO users (username, password, role, full_name) VALUES ($1, $2, $3, $4)",
		u.Username, u.Password, u.Role, u.FullName)
	if err != nil {
		return &PersistenceError{Op: "append user", Err: err}
	}
	return nil
}
