package profile

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserFromFormKeepsSubmittedValues(t *testing.T) {
	chID := primitive.NewObjectID()
	form := url.Values{
		"full_name":               {"Jordan Rivera"},
		"phone":                   {"555-0100"},
		"school":                  {"State University"},
		"major":                   {"Computer Science"},
		"membership_type":         {models.MembershipIndividual},
		"chapter_id":              {chID.Hex()},
		"interests":               {"Robotics", "Debate"},
		"affiliations":            {"NSBE"},
		"skills":                  {"Go, SQL"},
		"intake_cohort":           {"Fall 2025"},
		"linkedin":                {"https://linkedin.com/in/jordan"},
		"twitter":                 {"@jordan"},
		"instagram":               {"jordan.gram"},
		"emergency_contact_name":  {"Sam Rivera"},
		"emergency_contact_phone": {"555-0199"},
	}

	r := httptest.NewRequest("POST", "/profile/edit", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := r.ParseForm(); err != nil {
		t.Fatalf("ParseForm failed: %v", err)
	}

	u := userFromForm(r)
	if u.FullName != "Jordan Rivera" || u.Phone != "555-0100" {
		t.Errorf("basic fields: got %+v", u)
	}
	if u.MembershipType != models.MembershipIndividual {
		t.Errorf("MembershipType: got %q", u.MembershipType)
	}
	if u.ChapterID == nil || *u.ChapterID != chID {
		t.Errorf("ChapterID: got %v, want %v", u.ChapterID, chID)
	}
	if len(u.Interests) != 2 || u.Interests[0] != "Robotics" {
		t.Errorf("Interests: got %v", u.Interests)
	}
	if len(u.Affiliations) != 1 || u.Affiliations[0] != "NSBE" {
		t.Errorf("Affiliations: got %v", u.Affiliations)
	}
	if u.SocialLinks.LinkedIn != "https://linkedin.com/in/jordan" || u.SocialLinks.Twitter != "@jordan" {
		t.Errorf("SocialLinks: got %+v", u.SocialLinks)
	}
	if u.EmergencyContactName != "Sam Rivera" || u.EmergencyContactPhone != "555-0199" {
		t.Errorf("emergency contact: got %+v", u)
	}
}

func TestUserFromFormIgnoresBadChapterID(t *testing.T) {
	form := url.Values{
		"full_name":  {"Jordan Rivera"},
		"chapter_id": {"not-a-hex-id"},
	}

	r := httptest.NewRequest("POST", "/profile/edit", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if err := r.ParseForm(); err != nil {
		t.Fatalf("ParseForm failed: %v", err)
	}

	if u := userFromForm(r); u.ChapterID != nil {
		t.Errorf("ChapterID: got %v, want nil", u.ChapterID)
	}
}

func TestFirstUnknown(t *testing.T) {
	allowed := []string{"NSBE", "SWE"}

	if got := firstUnknown([]string{"NSBE", "SWE"}, allowed); got != "" {
		t.Errorf("all known: got %q", got)
	}
	if got := firstUnknown([]string{"NSBE", "SHPE"}, allowed); got != "SHPE" {
		t.Errorf("unknown value: got %q, want SHPE", got)
	}
	if got := firstUnknown([]string{"nsbe"}, allowed); got != "nsbe" {
		t.Errorf("vocabulary match is exact: got %q", got)
	}
}
