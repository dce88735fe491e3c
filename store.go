package main

// Rows are addressed by their current physical position in the backing
// store: 1-based, counting the header row, so the first record sits at
// position 2. Deleting a row shifts every later row up by one, which
// makes any position captured before a mutation stale; callers must
// re-resolve against a fresh ListAll before reusing one.
const (
	headerRows          = 1
	firstRecordPosition = headerRows + 1
)

type RecordStore interface {
	ListAll() ([]PositionedReport, error)
	Append(r Report) error
	UpdateFields(position int, fields ReportFields) error
	Delete(position int) error
}

type UserStore interface {
	ListAll() ([]User, error)
	Append(u User) error
}
