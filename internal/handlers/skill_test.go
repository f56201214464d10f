package handlers_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/webfolio-dev/webfolio/models"
)

func TestSkillCreateListRoundTrip(t *testing.T) {
	s := newTestServer(t)
	cookies, user := s.register("owner@example.com")

	role := s.createRole(cookies, user, "Engineer", false)
	created := s.createSkill(cookies, user, "Go", role.ID)
	if created.Label != "Go" {
		t.Errorf("Label = %q, want Go", created.Label)
	}

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/%d/skills", user.ID), nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list returned %d", rec.Code)
	}
	skills := decodeBody[[]models.Skill](t, rec)
	if len(skills) != 1 {
		t.Fatalf("len(skills) = %d, want 1", len(skills))
	}
	if skills[0].Role == nil || skills[0].Role.Label != "Engineer" {
		t.Errorf("Role = %+v, want label Engineer", skills[0].Role)
	}
}

func TestSkillCreateInvalidProficiency(t *testing.T) {
	s := newTestServer(t)
	cookies, user := s.register("owner@example.com")
	role := s.createRole(cookies, user, "Engineer", false)

	rec := s.do(http.MethodPost, fmt.Sprintf("/api/%d/skills", user.ID), map[string]any{
		"label":       "Go",
		"proficiency": "Wizard",
		"roleId":      role.ID,
	}, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create returned %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Proficiency is invalid") {
		t.Errorf("body = %q, want proficiency message", rec.Body.String())
	}
}

func TestSkillCreateMissingRole(t *testing.T) {
	s := newTestServer(t)
	cookies, user := s.register("owner@example.com")

	rec := s.do(http.MethodPost, fmt.Sprintf("/api/%d/skills", user.ID), map[string]any{
		"label":       "Go",
		"proficiency": models.ProficiencyFluent,
	}, cookies)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create returned %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Role id is required") {
		t.Errorf("body = %q, want role id message", rec.Body.String())
	}
}

func TestSkillListFilteredByRole(t *testing.T) {
	s := newTestServer(t)
	cookies, user := s.register("owner@example.com")

	backend := s.createRole(cookies, user, "Backend", false)
	frontend := s.createRole(cookies, user, "Frontend", false)
	s.createSkill(cookies, user, "Go", backend.ID)
	s.createSkill(cookies, user, "React", frontend.ID)

	rec := s.do(http.MethodGet, fmt.Sprintf("/api/%d/skills?roleId=%d", user.ID, backend.ID), nil, nil)
	skills := decodeBody[[]models.Skill](t, rec)
	if len(skills) != 1 {
		t.Fatalf("len(skills) = %d, want 1", len(skills))
	}
	if skills[0].Label != "Go" {
		t.Errorf("filtered skill = %q, want Go", skills[0].Label)
	}
}

func TestSkillUpdateOwnRow(t *testing.T) {
	s := newTestServer(t)
	cookies, user := s.register("owner@example.com")

	role := s.createRole(cookies, user, "Engineer", false)
	skill := s.createSkill(cookies, user, "Go", role.ID)

	rec := s.do(http.MethodPatch, fmt.Sprintf("/api/%d/skills/%d", user.ID, skill.ID), map[string]any{
		"label":       "Golang",
		"proficiency": models.ProficiencyIntermediate,
		"roleId":      role.ID,
	}, cookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch returned %d: %s", rec.Code, rec.Body.String())
	}
	res := decodeBody[map[string]int64](t, rec)
	if res["count"] != 1 {
		t.Errorf("count = %d, want 1", res["count"])
	}

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/%d/skills/%d", user.ID, skill.ID), nil, nil)
	got := decodeBody[models.Skill](t, rec)
	if got.Label != "Golang" || got.Proficiency != models.ProficiencyIntermediate {
		t.Errorf("skill = %+v, want Golang/Intermediate", got)
	}
}

func TestSkillDeleteCrossOwnerIsSilentNoOp(t *testing.T) {
	s := newTestServer(t)
	ownerCookies, owner := s.register("owner@example.com")
	otherCookies, _ := s.register("other@example.com")

	role := s.createRole(ownerCookies, owner, "Engineer", false)
	skill := s.createSkill(ownerCookies, owner, "Go", role.ID)

	rec := s.do(http.MethodDelete, fmt.Sprintf("/api/%d/skills/%d", owner.ID, skill.ID), nil, otherCookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("cross-owner delete returned %d, want 200", rec.Code)
	}
	res := decodeBody[map[string]int64](t, rec)
	if res["count"] != 0 {
		t.Errorf("count = %d, want 0", res["count"])
	}

	var remaining int64
	s.db.Model(&models.Skill{}).Count(&remaining)
	if remaining != 1 {
		t.Errorf("skills in db = %d, want 1", remaining)
	}
}
