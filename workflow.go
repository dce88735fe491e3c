package main

import (
	"fmt"
	"strings"
	"time"
)

// Workflow drives the select -> edit/delete cycle against the record
// store. Rows are addressed by their current physical position, so
// every call re-reads the sheet and resolves positions against that
// fresh snapshot; a position from an earlier snapshot is never reused,
// because any delete shifts the rows behind it.
//
// There is no cross-session locking. Two sessions can still race on
// the same position and the later write wins silently; each mutation
// only keeps the resolve-then-write window as small as the store
// allows.
type Workflow struct {
	store RecordStore
}

func NewWorkflow(store RecordStore) *Workflow {
	return &Workflow{store: store}
}

// Visible returns the rows the session may see, in store order.
func (w *Workflow) Visible(sess Session) ([]PositionedReport, error) {
	all, err := w.store.ListAll()
	if err != nil {
		return nil, err
	}
	return visibleRecords(all, sess.Role, sess.FullName), nil
}

// ResolveLabel maps a selection label to a concrete row. Labels are
// not unique; identical labels resolve to the first match in store
// order, deterministically rather than as an error.
func (w *Workflow) ResolveLabel(sess Session, label string) (PositionedReport, bool, error) {
	visible, err := w.Visible(sess)
	if err != nil {
		return PositionedReport{}, false, err
	}
	for _, r := range visible {
		if r.Label() == label {
			return r, true, nil
		}
	}
	return PositionedReport{}, false, nil
}

// Submit validates and appends a new report. The input date is stamped
// with the current date and the officer name with the session
// identity; both are fixed for the life of the row. The file year
// defaults to the current year and the status to Served, like the
// submit form did.
func (w *Workflow) Submit(sess Session, fields ReportFields) error {
	if err := validateFields(fields); err != nil {
		return err
	}
	if fields.FileYear == 0 {
		fields.FileYear = time.Now().Year()
	}
	if fields.Status == "" {
		fields.Status = StatusServed
	}

	return w.store.Append(Report{
		InputDate:   today(),
		FileNumber:  fields.FileNumber,
		FileYear:    fields.FileYear,
		ServiceTime: fields.ServiceTime,
		Status:      fields.Status,
		Notes:       fields.Notes,
		OfficerName: sess.FullName,
	})
}

// Update writes the five editable fields of the row at position,
// leaving the input date and the officer name untouched. All five land
// together or not at all.
func (w *Workflow) Update(sess Session, position int, fields ReportFields) error {
	if err := validateFields(fields); err != nil {
		return err
	}
	if err := w.gate(sess, position); err != nil {
		return err
	}
	return w.store.UpdateFields(position, fields)
}

// Delete removes the row at position. Irreversible; every row behind
// it shifts up by one.
func (w *Workflow) Delete(sess Session, position int) error {
	if err := w.gate(sess, position); err != nil {
		return err
	}
	return w.store.Delete(position)
}

// gate re-resolves the position against a fresh snapshot and applies
// visibility and the lock policy. A position that no longer maps to a
// visible row reads as gone, whether it was deleted or belongs to
// someone else.
func (w *Workflow) gate(sess Session, position int) error {
	visible, err := w.Visible(sess)
	if err != nil {
		return err
	}
	for _, r := range visible {
		if r.Position != position {
			continue
		}
		if isLocked(r.Report, sess.Role, today()) {
			return ErrRecordLocked
		}
		return nil
	}
	return &PersistenceError{Op: "resolve position", Err: fmt.Errorf("no visible row at position %d", position)}
}

func validateFields(fields ReportFields) error {
	if strings.TrimSpace(fields.FileNumber) == "" {
		return &ValidationError{Field: "file_number", Reason: "is required"}
	}
	return nil
}
