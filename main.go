package main

import (
	"fmt"
	"net/http"

	"github.com/apex/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	_ "github.com/lib/pq"
)

var (
	recordStore RecordStore
	userStore   UserStore
	workflow    *Workflow
	store       *sessions.CookieStore
)

func main() {
	cfg := loadConfig()

	// Configure session store with proper cookie settings
	store = sessions.NewCookieStore([]byte(cfg.SessionKey))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = false // Set to true in production with HTTPS
	store.Options.SameSite = http.SameSiteLaxMode

	var err error
	recordStore, userStore, err = openStores(cfg)
	if err != nil {
		log.WithError(err).Fatal("failed to open the backing store")
	}
	workflow = NewWorkflow(recordStore)

	r := newRouter()

	log.Infof("server starting on %s (backend: %s)", cfg.ListenAddr, cfg.StoreBackend)
	if err := http.ListenAndServe(cfg.ListenAddr, r); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func newRouter() *mux.Router {
	r := mux.NewRouter()

	// Static files
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("./static/"))))

	// Routes
	r.HandleFunc("/", homeHandler).Methods("GET")
	r.HandleFunc("/login", loginHandler).Methods("POST")
	r.HandleFunc("/logout", logoutHandler).Methods("POST")
	r.HandleFunc("/api/check-auth", checkAuthHandler).Methods("GET")
	r.HandleFunc("/api/reports", requireAuth(getReportsHandler)).Methods("GET")
	r.HandleFunc("/api/reports", requireAuth(createReportHandler)).Methods("POST")
	r.HandleFunc("/api/reports/select", requireAuth(selectReportHandler)).Methods("GET")
	r.HandleFunc("/api/reports/export", requireAdmin(exportReportsHandler)).Methods("GET")
	r.HandleFunc("/api/reports/{position}", requireAuth(updateReportHandler)).Methods("PUT")
	r.HandleFunc("/api/reports/{position}", requireAuth(deleteReportHandler)).Methods("DELETE")
	r.HandleFunc("/api/users", requireAdmin(getUsersHandler)).Methods("GET")
	r.HandleFunc("/api/users", requireAdmin(createUserHandler)).Methods("POST")

	return r
}

func openStores(cfg Config) (RecordStore, UserStore, error) {
	switch cfg.StoreBackend {
	case "csv":
		return NewCSVRecordStore(cfg.ReportCSV), NewCSVUserStore(cfg.UserCSV), nil
	case "postgres":
		db, err := openPG(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return NewPGRecordStore(db), NewPGUserStore(db), nil
	case "memory":
		return NewMemoryRecordStore(), NewMemoryUserStore(), nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
}
