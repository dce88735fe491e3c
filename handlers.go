package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/gorilla/mux"
)

// Authentication handlers
func homeHandler(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, "./static/login.html")
}

func loginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	user, err := authenticate(userStore, credentials.Username, credentials.Password)
	if err != nil {
		var authErr *AuthError
		if errors.As(err, &authErr) {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		} else {
			log.WithError(err).Error("login: user sheet unreachable")
			http.Error(w, err.Error(), http.StatusBadGateway)
		}
		return
	}

	session, _ := store.Get(r, sessionName)
	session.Values["username"] = user.Username
	session.Values["role"] = user.Role
	session.Values["full_name"] = user.FullName
	session.Values["last_activity"] = time.Now().Unix()
	session.Save(r, w)

	log.Infof("login: %s (%s)", user.Username, user.Role)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func logoutHandler(w http.ResponseWriter, r *http.Request) {
	session, _ := store.Get(r, sessionName)
	delete(session.Values, "username")
	session.Options.MaxAge = -1
	session.Save(r, w)
	w.WriteHeader(http.StatusOK)
}

func checkAuthHandler(w http.ResponseWriter, r *http.Request) {
	session, err := store.Get(r, sessionName)
	if err != nil {
		http.Error(w, "Session error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Check if session has expired
	lastActivity, ok := session.Values["last_activity"].(int64)
	if !ok || time.Now().Unix()-lastActivity > int64(sessionIdleLimit.Seconds()) {
		// Session expired
		session.Options.MaxAge = -1
		session.Save(r, w)
		http.Error(w, "Session expired", http.StatusUnauthorized)
		return
	}

	sess := sessionFromRequest(r)
	if !sess.LoggedIn {
		http.Error(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	// Update last activity
	session.Values["last_activity"] = time.Now().Unix()
	session.Save(r, w)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(sess)
}

// writeWorkflowError maps the error taxonomy onto HTTP statuses. Every
// error is terminal for the interaction; nothing retries on its own.
func writeWorkflowError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	var persistenceErr *PersistenceError

	switch {
	case errors.Is(err, ErrRecordLocked):
		http.Error(w, "Record is locked", http.StatusForbidden)
	case errors.As(err, &validationErr):
		http.Error(w, validationErr.Error(), http.StatusBadRequest)
	case errors.As(err, &persistenceErr):
		log.WithError(err).Error("store failure")
		http.Error(w, persistenceErr.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Report handlers

// reportView is one row of the review table: the record plus its
// selection label and whether the lock policy holds it closed for the
// session that asked.
type reportView struct {
	PositionedReport
	Label  string `json:"label"`
	Locked bool   `json:"locked"`
}

func getReportsHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)

	rows, err := workflow.Visible(sess)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	dateFilter := r.URL.Query().Get("date")
	currentDate := today()

	views := make([]reportView, 0, len(rows))
	for _, row := range rows {
		if dateFilter != "" && row.InputDate != dateFilter {
			continue
		}
		views = append(views, reportView{
			PositionedReport: row,
			Label:            row.Label(),
			Locked:           isLocked(row.Report, sess.Role, currentDate),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(views)
}

// selectReportHandler resolves a selection label to a concrete row so
// the client can address a follow-up edit or delete by position. An
// ambiguous label is not an error; the first match in store order wins.
func selectReportHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)
	label := r.URL.Query().Get("label")

	row, found, err := workflow.ResolveLabel(sess, label)
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	if !found {
		http.Error(w, "No record matches the selection", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reportView{
		PositionedReport: row,
		Label:            row.Label(),
		Locked:           isLocked(row.Report, sess.Role, today()),
	})
}

func createReportHandler(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromRequest(r)

	var fields ReportFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := workflow.Submit(sess, fields); err != nil {
		writeWorkflowError(w, err)
		return
	}

	log.Infof("report submitted by %s", sess.FullName)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Report submitted"})
}

func updateReportHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	position, err := strconv.Atoi(vars["position"])
	if err != nil {
		http.Error(w, "Invalid position", http.StatusBadRequest)
		return
	}

	var fields ReportFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	sess := sessionFromRequest(r)
	if err := workflow.Update(sess, position, fields); err != nil {
		writeWorkflowError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Report updated"})
}

func deleteReportHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	position, err := strconv.Atoi(vars["position"])
	if err != nil {
		http.Error(w, "Invalid position", http.StatusBadRequest)
		return
	}

	sess := sessionFromRequest(r)
	if err := workflow.Delete(sess, position); err != nil {
		writeWorkflowError(w, err)
		return
	}

	log.Infof("report at position %d deleted by %s", position, sess.Username)
	w.WriteHeader(http.StatusOK)
}

func exportReportsHandler(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = today()
	}

	all, err := recordStore.ListAll()
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	var records []Report
	for _, row := range all {
		if row.InputDate == date {
			records = append(records, row.Report)
		}
	}

	if len(records) == 0 {
		http.Error(w, "No reports for "+date, http.StatusNotFound)
		return
	}

	doc, err := renderPDF(records, exportColumns, date)
	if err != nil {
		log.WithError(err).Error("export failed")
		http.Error(w, "Error rendering PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=Laporan_%s.pdf", date))
	w.Write(doc)
}

// User handlers
func getUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := userStore.ListAll()
	if err != nil {
		writeWorkflowError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}

func createUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
		FullName string `json:"full_name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(payload.Username) == "" {
		writeWorkflowError(w, &ValidationError{Field: "username", Reason: "is required"})
		return
	}
	if payload.Password == "" {
		writeWorkflowError(w, &ValidationError{Field: "password", Reason: "is required"})
		return
	}
	if payload.Role == "" {
		payload.Role = RoleOfficer
	}
	if payload.Role != RoleAdmin && payload.Role != RoleOfficer {
		writeWorkflowError(w, &ValidationError{Field: "role", Reason: "must be admin or officer"})
		return
	}

	existing, err := userStore.ListAll()
	if err != nil {
		writeWorkflowError(w, err)
		return
	}
	for _, u := range existing {
		if u.Username == payload.Username {
			writeWorkflowError(w, &ValidationError{Field: "username", Reason: "already exists"})
			return
		}
	}

	user := User{
		Username: payload.Username,
		Password: payload.Password,
		Role:     payload.Role,
		FullName: payload.FullName,
	}
	if err := userStore.Append(user); err != nil {
		writeWorkflowError(w, err)
		return
	}

	log.Infof("user %s created with role %s", user.Username, user.Role)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}
