package main

import "time"

// Roles stored in the user sheet. Role is the only authorization axis:
// admins see and correct everything, officers only their own same-day rows.
const (
	RoleAdmin   = "admin"
	RoleOfficer = "officer"
)

// Status of a service event.
const (
	StatusServed    = "Served"
	StatusNotServed = "NotServed"
)

const dateLayout = "2006-01-02"

// today returns the calendar date in the YYYY-MM-DD form that every
// lock and filter decision compares against, by string equality.
func today() string {
	return time.Now().Format(dateLayout)
}

// Report is one submitted service event. InputDate and OfficerName are
// stamped at creation and never change; the remaining fields are the
// editable ones and travel together in ReportFields.
type Report struct {
	InputDate   string `json:"input_date"`
	FileNumber  string `json:"file_number"`
	FileYear    int    `json:"file_year"`
	ServiceTime string `json:"service_time"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
	OfficerName string `json:"officer_name"`
}

// Label is the human-readable handle a user picks a row by. Two rows
// can share a label; selection always takes the first match in store order.
func (r Report) Label() string {
	return r.InputDate + " | " + r.FileNumber + " | " + r.OfficerName
}

// ReportFields carries the five editable fields of a report. A record
// update applies all of them together or none at all.
type ReportFields struct {
	FileNumber  string `json:"file_number"`
	FileYear    int    `json:"file_year"`
	ServiceTime string `json:"service_time"`
	Status      string `json:"status"`
	Notes       string `json:"notes"`
}

// PositionedReport is a report together with its current physical
// position in the backing store. The position is only valid against the
// snapshot it was read from.
type PositionedReport struct {
	Position int `json:"position"`
	Report
}

type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
	Role     string `json:"role"`
	FullName string `json:"full_name"`
}

// Session is the authenticated principal for one browsing session. It
// is materialized from the cookie session per request and passed
// explicitly into every workflow call.
type Session struct {
	LoggedIn bool   `json:"logged_in"`
	Role     string `json:"role"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}
