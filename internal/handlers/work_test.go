package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/webfolio-dev/webfolio/models"
)

type workListEntry struct {
	models.Work
	ToDateDisplay string `json:"toDateDisplay"`
}

func (s *testServer) createWork(cookies []*http.Cookie, owner models.User, roleID uint, company string, from time.Time, to *time.Time) models.Work {
	s.t.Helper()

	body := map[string]any{
		"roleId":      roleID,
		"company":     company,
		"fromDate":    from,
		"description": "Built things",
	}
	if to != nil {
		body["toDate"] = to
	}

	rec := s.do(http.MethodPost, fmt.Sprintf("/api/%d/works", owner.ID), body, cookies)
	if rec.Code != http.StatusOK {
		s.t.Fatalf("create work returned %d: %s", rec.Code, rec.Body.String())
	}
	return decodeBody[models.Work](s.t, rec)
}

func TestWorkOngoingListedAsPresent(t *testing.T) {
	s := newTestServer(t)
	cookies, user := s.register("owner@example.com")

	role := s.createRole(cookies, user, "Engineer", false)
	s.createWork(cookies, user, role.ID, "Acme", date(2020, time.January, 1), nil)

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/%d/works", user.ID), nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list returned %d", rec.Code)
	}
	works := decodeBody[[]workListEntry](t, rec)
	if len(works) != 1 {
		t.Fatalf("len(works) = %d, want 1", len(works))
	}

	entry := works[0]
	if entry.Company != "Acme" {
		t.Errorf("Company = %q, want Acme", entry.Company)
	}
	if entry.Role == nil || entry.Role.Label != "Engineer" {
		t.Errorf("Role = %+v, want label Engineer", entry.Role)
	}
	if entry.ToDateDisplay != "Present" {
		t.Errorf("ToDateDisplay = %q, want Present", entry.ToDateDisplay)
	}
	if entry.ToDate != nil {
		t.Errorf("ToDate = %v, want nil", entry.ToDate)
	}
}

func TestWorkConcreteEndDateListedAsItself(t *testing.T) {
	s := newTestServer(t)
	cookies, user := s.register("owner@example.com")

	role := s.createRole(cookies, user, "Engineer", false)
	end := date(2022, time.March, 15)
	s.createWork(cookies, user, role.ID, "Acme", date(2020, time.January, 1), &end)

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/%d/works", user.ID), nil, nil)
	works := decodeBody[[]workListEntry](t, rec)
	if len(works) != 1 {
		t.Fatalf("len(works) = %d, want 1", len(works))
	}
	if works[0].ToDateDisplay != "Mar 15, 2022" {
		t.Errorf("ToDateDisplay = %q, want Mar 15, 2022", works[0].ToDateDisplay)
	}
}

func TestWorkListOrderedByStartDateDesc(t *testing.T) {
	s := newTestServer(t)
	cookies, user := s.register("owner@example.com")

	role := s.createRole(cookies, user, "Engineer", false)
	s.createWork(cookies, user, role.ID, "First Corp", date(2015, time.June, 1), nil)
	s.createWork(cookies, user, role.ID, "Second Corp", date(2021, time.June, 1), nil)

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/%d/works", user.ID), nil, nil)
	works := decodeBody[[]workListEntry](t, rec)
	if len(works) != 2 {
		t.Fatalf("len(works) = %d, want 2", len(works))
	}
	if works[0].Company != "Second Corp" {
		t.Errorf("works[0] = %q, want Second Corp (most recent first)", works[0].Company)
	}
}

func TestWorkCreateMissingCompany(t *testing.T) {
	s := newTestServer(t)
	cookies, user := s.register("owner@example.com")
	role := s.createRole(cookies, user, "Engineer", false)

	rec := s.do(http.MethodPost, fmt.Sprintf("/api/%d/works", user.ID), map[string]any{
		"roleId":      role.ID,
		"fromDate":    date(2020, time.January, 1),
		"description": "Built things",
	}, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create returned %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Company is required") {
		t.Errorf("body = %q, want company message", rec.Body.String())
	}

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/%d/works", user.ID), nil, nil)
	works := decodeBody[[]workListEntry](t, rec)
	if len(works) != 0 {
		t.Errorf("len(works) = %d, want 0", len(works))
	}
}

func TestWorkUpdateCrossOwnerIsSilentNoOp(t *testing.T) {
	s := newTestServer(t)
	ownerCookies, owner := s.register("owner@example.com")
	otherCookies, other := s.register("other@example.com")

	role := s.createRole(ownerCookies, owner, "Engineer", false)
	otherRole := s.createRole(otherCookies, other, "Intruder", false)
	work := s.createWork(ownerCookies, owner, role.ID, "Acme", date(2020, time.January, 1), nil)

	rec := s.do(http.MethodPatch, fmt.Sprintf("/api/%d/works/%d", owner.ID, work.ID), map[string]any{
		"roleId":      otherRole.ID,
		"company":     "Hijacked Inc",
		"fromDate":    date(2020, time.January, 1),
		"description": "rewritten",
	}, otherCookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("cross-owner patch returned %d, want 200", rec.Code)
	}
	res := decodeBody[map[string]int64](t, rec)
	if res["count"] != 0 {
		t.Errorf("count = %d, want 0", res["count"])
	}

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/%d/works/%d", owner.ID, work.ID), nil, nil)
	got := decodeBody[models.Work](t, rec)
	if got.Company != "Acme" {
		t.Errorf("Company = %q, want Acme (unchanged)", got.Company)
	}
}

func TestWorkDeleteCrossOwnerIsSilentNoOp(t *testing.T) {
	s := newTestServer(t)
	ownerCookies, owner := s.register("owner@example.com")
	otherCookies, _ := s.register("other@example.com")

	role := s.createRole(ownerCookies, owner, "Engineer", false)
	work := s.createWork(ownerCookies, owner, role.ID, "Acme", date(2020, time.January, 1), nil)

	rec := s.do(http.MethodDelete, fmt.Sprintf("/api/%d/works/%d", owner.ID, work.ID), nil, otherCookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("cross-owner delete returned %d, want 200", rec.Code)
	}
	res := decodeBody[map[string]int64](t, rec)
	if res["count"] != 0 {
		t.Errorf("count = %d, want 0", res["count"])
	}

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/%d/works/%d", owner.ID, work.ID), nil, nil)
	got := decodeBody[models.Work](t, rec)
	if got.ID != work.ID {
		t.Errorf("work %d is gone, want it untouched", work.ID)
	}
}

func TestWorkUpdateClearsEndDate(t *testing.T) {
	s := newTestServer(t)
	cookies, user := s.register("owner@example.com")

	role := s.createRole(cookies, user, "Engineer", false)
	end := date(2022, time.March, 15)
	work := s.createWork(cookies, user, role.ID, "Acme", date(2020, time.January, 1), &end)

	rec := s.do(http.MethodPatch, fmt.Sprintf("/api/%d/works/%d", user.ID, work.ID), map[string]any{
		"roleId":      role.ID,
		"company":     "Acme",
		"fromDate":    date(2020, time.January, 1),
		"toDate":      nil,
		"description": "Built things",
	}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch returned %d: %s", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/%d/works", user.ID), nil, nil)
	works := decodeBody[[]workListEntry](t, rec)
	if len(works) != 1 || works[0].ToDateDisplay != "Present" {
		t.Errorf("works = %+v, want single ongoing entry", works)
	}
}
