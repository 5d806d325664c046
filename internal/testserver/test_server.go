// Package testserver runs an in-process fake of the remote CRM API for
// tests: JWT-style auth, registration with DRF-shaped field errors, and
// the three entity collections with list/create/patch/delete routes,
// plus one-shot failure injection and request counting.
package testserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
)

type entity = map[string]any

// Server is the fake API. All exported methods are safe for concurrent use.
type Server struct {
	Server *httptest.Server

	mu          sync.Mutex
	nextID      int64
	clients     []entity
	projects    []entity
	invoices    []entity
	users       map[string]string
	requireAuth bool
	failures    map[string]int
	requests    []string
}

// New starts the fake API and closes it when the test finishes.
func New(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		nextID:   1,
		users:    make(map[string]string),
		failures: make(map[string]int),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token/", s.handleToken)
	mux.HandleFunc("/auth/refresh/", s.handleRefresh)
	mux.HandleFunc("/register/", s.handleRegister)
	mux.HandleFunc("/clients/", s.entityHandler("clients", &s.clients))
	mux.HandleFunc("/projects/", s.entityHandler("projects", &s.projects))
	mux.HandleFunc("/invoices/", s.entityHandler("invoices", &s.invoices))

	s.Server = httptest.NewServer(s.record(mux))
	t.Cleanup(s.Server.Close)
	return s
}

// BaseURL returns the server's base URL for transport construction.
func (s *Server) BaseURL() string {
	return s.Server.URL
}

// AddUser registers valid credentials for the token endpoint.
func (s *Server) AddUser(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = password
}

// RequireAuth makes the entity routes demand a bearer token.
func (s *Server) RequireAuth() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requireAuth = true
}

// FailNext makes the next matching request fail with the given status.
// The method and path prefix match "PATCH /projects/"-style keys.
func (s *Server) FailNext(method, pathPrefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method+" "+pathPrefix] = status
}

// RequestCount counts requests seen for a method and path prefix.
func (s *Server) RequestCount(method, pathPrefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if strings.HasPrefix(r, method+" "+pathPrefix) {
			n++
		}
	}
	return n
}

// SeedClient inserts a client record and returns its id.
func (s *Server) SeedClient(fields entity) int64 {
	return s.seed(&s.clients, fields)
}

// SeedProject inserts a project record and returns its id.
func (s *Server) SeedProject(fields entity) int64 {
	return s.seed(&s.projects, fields)
}

// SeedInvoice inserts an invoice record and returns its id.
func (s *Server) SeedInvoice(fields entity) int64 {
	return s.seed(&s.invoices, fields)
}

// Record returns a copy of a stored record by collection name and id.
func (s *Server) Record(collection string, id int64) (entity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.collection(collection)
	for _, item := range *items {
		if item["id"] == id {
			out := make(entity, len(item))
			for k, v := range item {
				out[k] = v
			}
			return out, true
		}
	}
	return nil, false
}

func (s *Server) seed(items *[]entity, fields entity) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := make(entity, len(fields)+1)
	for k, v := range fields {
		rec[k] = v
	}
	id := s.nextID
	s.nextID++
	rec["id"] = id
	// Newest first, like the live API's ordering.
	*items = append([]entity{rec}, *items...)
	return id
}

func (s *Server) collection(name string) *[]entity {
	switch name {
	case "clients":
		return &s.clients
	case "projects":
		return &s.projects
	default:
		return &s.invoices
	}
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		var failStatus int
		for key, status := range s.failures {
			method, prefix, _ := strings.Cut(key, " ")
			if r.Method == method && strings.HasPrefix(r.URL.Path, prefix) {
				failStatus = status
				delete(s.failures, key)
				break
			}
		}
		s.mu.Unlock()

		if failStatus != 0 {
			writeJSON(w, failStatus, entity{"detail": "injected failure"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, entity{"detail": "invalid body"})
		return
	}

	s.mu.Lock()
	password, ok := s.users[creds.Username]
	s.mu.Unlock()
	if !ok || password != creds.Password {
		writeJSON(w, http.StatusUnauthorized, entity{"detail": "No active account found with the given credentials"})
		return
	}
	writeJSON(w, http.StatusOK, entity{
		"access":  "access-" + uuid.NewString(),
		"refresh": "refresh-" + uuid.NewString(),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || !strings.HasPrefix(body.Refresh, "refresh-") {
		writeJSON(w, http.StatusUnauthorized, entity{"detail": "Token is invalid or expired"})
		return
	}
	writeJSON(w, http.StatusOK, entity{"access": "access-" + uuid.NewString()})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, entity{"detail": "invalid body"})
		return
	}
	if body.Username == "" {
		writeJSON(w, http.StatusBadRequest, entity{"username": []string{"This field may not be blank."}})
		return
	}

	s.mu.Lock()
	_, taken := s.users[body.Username]
	if !taken {
		s.users[body.Username] = body.Password
	}
	id := s.nextID
	s.nextID++
	s.mu.Unlock()

	if taken {
		writeJSON(w, http.StatusBadRequest, entity{"username": []string{"Username already taken."}})
		return
	}
	writeJSON(w, http.StatusCreated, entity{"id": id, "username": body.Username})
}

// entityHandler serves GET/POST on /{name}/ and PATCH/DELETE on
// /{name}/{id}/.
func (s *Server) entityHandler(name string, items *[]entity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.authRejected(w, r) {
			return
		}

		rest := strings.TrimPrefix(r.URL.Path, "/"+name+"/")
		if rest == "" {
			switch r.Method {
			case http.MethodGet:
				s.mu.Lock()
				out := append([]entity(nil), *items...)
				s.mu.Unlock()
				writeJSON(w, http.StatusOK, out)
			case http.MethodPost:
				var fields entity
				if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
					writeJSON(w, http.StatusBadRequest, entity{"detail": "invalid body"})
					return
				}
				id := s.seed(items, fields)
				created, _ := s.Record(name, id)
				writeJSON(w, http.StatusCreated, created)
			default:
				w.WriteHeader(http.StatusMethodNotAllowed)
			}
			return
		}

		id, err := strconv.ParseInt(strings.TrimSuffix(rest, "/"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusNotFound, entity{"detail": "Not found."})
			return
		}

		switch r.Method {
		case http.MethodPatch:
			var fields entity
			if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
				writeJSON(w, http.StatusBadRequest, entity{"detail": "invalid body"})
				return
			}
			s.mu.Lock()
			defer s.mu.Unlock()
			for _, item := range *items {
				if item["id"] == id {
					for k, v := range fields {
						item[k] = v
					}
					w.WriteHeader(http.StatusOK)
					return
				}
			}
			writeJSON(w, http.StatusNotFound, entity{"detail": "Not found."})
		case http.MethodDelete:
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, item := range *items {
				if item["id"] == id {
					*items = append((*items)[:i], (*items)[i+1:]...)
					w.WriteHeader(http.StatusNoContent)
					return
				}
			}
			writeJSON(w, http.StatusNotFound, entity{"detail": "Not found."})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}
}

func (s *Server) authRejected(w http.ResponseWriter, r *http.Request) bool {
	s.mu.Lock()
	required := s.requireAuth
	s.mu.Unlock()
	if !required {
		return false
	}
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer access-") {
		writeJSON(w, http.StatusUnauthorized, entity{"detail": "Authentication credentials were not provided."})
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(fmt.Sprintf("testserver: encoding response: %v", err))
	}
}
