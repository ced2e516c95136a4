package testutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"todolist/internal/service"
)

// RecordedRequest is one request seen by a FakeServer.
type RecordedRequest struct {
	Method    string
	Path      string
	Body      string
	RequestID string
	Header    http.Header
}

// FakeServer serves a FakeService over the /todolist REST contract.
type FakeServer struct {
	*httptest.Server

	Store *FakeService

	// Token, when set, is required as "Authorization: Bearer <Token>".
	Token string

	mu       sync.Mutex
	requests []RecordedRequest
}

type fakeItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

type fakePatch struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
	CreatedAt *string `json:"createdAt"`
}

type fakeError struct {
	Error string `json:"error"`
}

// NewFakeServer starts a server backed by store and closes it when the test ends.
func NewFakeServer(t *testing.T, store *FakeService) *FakeServer {
	t.Helper()

	fs := &FakeServer{Store: store}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(fs.record)
	r.Use(fs.auth)

	r.Get("/todolist", fs.list)
	r.Post("/todolist", fs.create)
	r.Put("/todolist/{id}", fs.update)
	r.Delete("/todolist/{id}", fs.remove)

	fs.Server = httptest.NewServer(r)
	t.Cleanup(fs.Close)
	return fs
}

// CollectionURL returns the URL of the /todolist collection.
func (s *FakeServer) CollectionURL() string {
	return s.URL + "/todolist"
}

// Requests returns the requests seen so far.
func (s *FakeServer) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]RecordedRequest, len(s.requests))
	copy(result, s.requests)
	return result
}

// LastRequest returns the most recent request. It fails the test if there is none.
func (s *FakeServer) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("no requests recorded")
	}
	return reqs[len(reqs)-1]
}

func (s *FakeServer) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Body:      string(body),
			RequestID: chimw.GetReqID(r.Context()),
			Header:    r.Header.Clone(),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *FakeServer) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.Token != "" && r.Header.Get("Authorization") != "Bearer "+s.Token {
			w.Header().Set("WWW-Authenticate", `Bearer realm="todolist"`)
			writeJSON(w, http.StatusUnauthorized, fakeError{Error: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *FakeServer) list(w http.ResponseWriter, r *http.Request) {
	items, err := s.Store.ListAll(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	out := make([]fakeItem, 0, len(items))
	for _, item := range items {
		out = append(out, toFakeItem(item))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *FakeServer) create(w http.ResponseWriter, r *http.Request) {
	var req fakeItem
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, fakeError{Error: "invalid_json"})
		return
	}

	s.Store.count(OpCreate)
	if s.Store.CreateErr != nil {
		writeStoreError(w, s.Store.CreateErr)
		return
	}

	created := s.Store.Insert(service.TaskItem{
		Title:     req.Title,
		Completed: req.Completed,
		CreatedAt: parseFakeDate(req.CreatedAt),
	})
	writeJSON(w, http.StatusCreated, toFakeItem(created))
}

func (s *FakeServer) update(w http.ResponseWriter, r *http.Request) {
	var req fakePatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, fakeError{Error: "invalid_json"})
		return
	}

	patch := service.TaskPatch{Title: req.Title, Completed: req.Completed}
	if req.CreatedAt != nil {
		d := parseFakeDate(*req.CreatedAt)
		patch.CreatedAt = &d
	}

	updated, err := s.Store.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFakeItem(updated))
}

func (s *FakeServer) remove(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toFakeItem(item service.TaskItem) fakeItem {
	f := fakeItem{ID: item.ID, Title: item.Title, Completed: item.Completed}
	if item.CreatedAt.IsValid() {
		f.CreatedAt = item.CreatedAt.String()
	}
	return f
}

func parseFakeDate(s string) civil.Date {
	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}
	}
	return d
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, fakeError{Error: "not_found"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, fakeError{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
