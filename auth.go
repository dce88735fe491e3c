package main

import (
	"net/http"
	"time"
)

const (
	sessionName      = "session"
	sessionIdleLimit = 5 * time.Minute
)

// authenticate resolves a username/password pair against the user
// sheet. The sheet stores passwords as plain text and login is a
// linear scan, exactly like the sheet-backed system this replaces.
func authenticate(users UserStore, username, password string) (User, error) {
	all, err := users.ListAll()
	if err != nil {
		return User{}, err
	}
	for _, u := range all {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return User{}, &AuthError{Username: username}
}

// sessionFromRequest materializes the explicit Session value the
// workflow consumes from the cookie session.
func sessionFromRequest(r *http.Request) Session {
	cookie, _ := store.Get(r, sessionName)

	sess := Session{}
	if username, ok := cookie.Values["username"].(string); ok && username != "" {
		sess.LoggedIn = true
		sess.Username = username
	}
	if role, ok := cookie.Values["role"].(string); ok {
		sess.Role = role
	}
	if name, ok := cookie.Values["full_name"].(string); ok {
		sess.FullName = name
	}
	return sess
}

func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := store.Get(r, sessionName)

		// Check if session has expired
		lastActivity, ok := session.Values["last_activity"].(int64)
		if !ok || time.Now().Unix()-lastActivity > int64(sessionIdleLimit.Seconds()) {
			// Session expired
			session.Options.MaxAge = -1
			session.Save(r, w)
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}

		if username, ok := session.Values["username"].(string); !ok || username == "" {
			http.Error(w, "Authentication required", http.StatusUnauthorized)
			return
		}

		// Update last activity
		session.Values["last_activity"] = time.Now().Unix()
		session.Save(r, w)

		next(w, r)
	}
}

func requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := store.Get(r, sessionName)

		// Check if session has expired
		lastActivity, ok := session.Values["last_activity"].(int64)
		if !ok || time.Now().Unix()-lastActivity > int64(sessionIdleLimit.Seconds()) {
			// Session expired
			session.Options.MaxAge = -1
			session.Save(r, w)
			http.Error(w, "Session expired", http.StatusUnauthorized)
			return
		}

		role, ok := session.Values["role"].(string)
		if !ok || role != RoleAdmin {
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}

		// Update last activity
		session.Values["last_activity"] = time.Now().Unix()
		session.Save(r, w)

		next(w, r)
	}
}
