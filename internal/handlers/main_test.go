package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/webfolio-dev/webfolio/internal/auth"
	"github.com/webfolio-dev/webfolio/internal/handlers"
	"github.com/webfolio-dev/webfolio/internal/router"
	"github.com/webfolio-dev/webfolio/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testServer struct {
	t  *testing.T
	db *gorm.DB
	h  http.Handler
}

// newTestServer spins up the full router against a fresh in-memory
// sqlite database with foreign keys enforced. One connection max, so
// the private :memory: database survives across queries.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	handlers.FlushListCache()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.Migrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	auth.NewSessionStore("test-secret", false)

	return &testServer{t: t, db: db, h: router.New(db, nil)}
}

func (s *testServer) do(method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("failed to marshal body: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}

// register creates a user through the real endpoint and returns the
// session cookies for subsequent authenticated calls.
func (s *testServer) register(email string) ([]*http.Cookie, models.User) {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/api/register", map[string]any{
		"name":     "Test User",
		"email":    email,
		"password": "secret123",
	}, nil)
	if rec.Code != http.StatusOK {
		s.t.Fatalf("register returned %d: %s", rec.Code, rec.Body.String())
	}

	return rec.Result().Cookies(), decodeBody[models.User](s.t, rec)
}

func (s *testServer) createRole(cookies []*http.Cookie, owner models.User, label string, featured bool) models.Role {
	s.t.Helper()

	rec := s.do(http.MethodPost, fmt.Sprintf("/api/%d/roles", owner.ID), map[string]any{
		"label":      label,
		"isFeatured": featured,
	}, cookies)
	if rec.Code != http.StatusOK {
		s.t.Fatalf("create role returned %d: %s", rec.Code, rec.Body.String())
	}
	return decodeBody[models.Role](s.t, rec)
}

func (s *testServer) createSkill(cookies []*http.Cookie, owner models.User, label string, roleID uint) models.Skill {
	s.t.Helper()

	rec := s.do(http.MethodPost, fmt.Sprintf("/api/%d/skills", owner.ID), map[string]any{
		"label":       label,
		"proficiency": models.ProficiencyFluent,
		"roleId":      roleID,
	}, cookies)
	if rec.Code != http.StatusOK {
		s.t.Fatalf("create skill returned %d: %s", rec.Code, rec.Body.String())
	}
	return decodeBody[models.Skill](s.t, rec)
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
