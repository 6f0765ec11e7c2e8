// internal/app/features/profile/form.go
package profile

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	userstore "github.com/dalemusser/chapterhub/internal/app/store/users"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type profileFormData struct {
	viewdata.BaseVM
	Error string

	IsSetup bool
	Action  string // form post target
	// NewInterests echoes the free-form interest input on re-render.
	NewInterests string

	User               models.User
	Chapters           []models.Chapter
	MembershipTypes    []string
	InterestOptions    []string
	AffiliationOptions []string
}

// ServeSetup renders the first-run profile form shown after registration.
func (h *Handler) ServeSetup(w http.ResponseWriter, r *http.Request) {
	h.serveForm(w, r, true)
}

// ServeEdit renders the profile edit form.
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	h.serveForm(w, r, false)
}

func (h *Handler) serveForm(w http.ResponseWriter, r *http.Request, setup bool) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		uierrors.RenderNotFound(w, r, "Account not found.", "/")
		return
	}

	data, err := h.newFormData(ctx, r, setup)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile form", err, "Could not load the form.", "/dashboard")
		return
	}
	data.User = *u

	templates.Render(w, r, "profile_form", data)
}

// HandleSetupPost completes the onboarding profile. Saving marks the profile
// complete; new interest values are appended to the open tags vocabulary.
func (h *Handler) HandleSetupPost(w http.ResponseWriter, r *http.Request) {
	h.handleSave(w, r, true)
}

// HandleEditPost saves profile changes. Changing the chapter re-enters the
// chapter approval queue.
func (h *Handler) HandleEditPost(w http.ResponseWriter, r *http.Request) {
	h.handleSave(w, r, false)
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request, setup bool) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		uierrors.RenderUnauthorized(w, r, "/login")
		return
	}

	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/profile")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	upd, newInterests, errMsg := h.parseProfileForm(r)
	if errMsg != "" {
		h.rerenderForm(ctx, w, r, setup, errMsg)
		return
	}

	// Affiliations are a closed, admin-curated vocabulary; the option list
	// in the form is not trusted.
	if len(upd.Affiliations) > 0 {
		vocab, err := h.Metadata.Get(ctx, models.VocabularyAffiliations)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "load affiliations vocabulary", err, "Could not save your profile.", "/profile")
			return
		}
		if unknown := firstUnknown(upd.Affiliations, vocab.Values); unknown != "" {
			h.rerenderForm(ctx, w, r, setup, "Unknown affiliation: "+unknown+".")
			return
		}
	}

	if len(newInterests) > 0 {
		if err := h.Metadata.AppendValues(ctx, models.VocabularyTags, newInterests); err != nil {
			h.ErrLog.LogServerError(w, r, "append interest tags", err, "Could not save your profile.", "/profile")
			return
		}
	}

	if err := h.Users.SaveProfile(ctx, uid, upd, true); err != nil {
		h.ErrLog.LogServerError(w, r, "save profile", err, "Could not save your profile.", "/profile")
		return
	}

	h.Log.Info("profile saved",
		zap.String("user_id", uid.Hex()),
		zap.Bool("setup", setup))

	if setup {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// parseProfileForm extracts and validates the profile fields. It returns the
// update, any interest values not yet in the vocabulary form options, and an
// error message for re-rendering (empty when valid).
func (h *Handler) parseProfileForm(r *http.Request) (userstore.ProfileUpdate, []string, string) {
	upd := userstore.ProfileUpdate{
		FullName:       strings.TrimSpace(r.FormValue("full_name")),
		Phone:          strings.TrimSpace(r.FormValue("phone")),
		School:         strings.TrimSpace(r.FormValue("school")),
		Major:          strings.TrimSpace(r.FormValue("major")),
		MembershipType: strings.TrimSpace(r.FormValue("membership_type")),
		Skills:         strings.TrimSpace(r.FormValue("skills")),
		IntakeCohort:   strings.TrimSpace(r.FormValue("intake_cohort")),
		EmergencyName:  strings.TrimSpace(r.FormValue("emergency_contact_name")),
		EmergencyPhone: strings.TrimSpace(r.FormValue("emergency_contact_phone")),
		SocialLinks: models.SocialLinks{
			LinkedIn:  strings.TrimSpace(r.FormValue("linkedin")),
			Twitter:   strings.TrimSpace(r.FormValue("twitter")),
			Instagram: strings.TrimSpace(r.FormValue("instagram")),
		},
		Affiliations: cleanValues(r.Form["affiliations"]),
	}

	if upd.FullName == "" {
		return upd, nil, "Name is required."
	}
	if upd.MembershipType != "" && !models.ValidMembershipType(upd.MembershipType) {
		return upd, nil, "Unknown membership type."
	}

	interests := cleanValues(r.Form["interests"])
	newInterests := splitNewInterests(r.FormValue("new_interests"))
	upd.Interests = append(interests, newInterests...)

	if chHex := strings.TrimSpace(r.FormValue("chapter_id")); chHex != "" {
		oid, err := primitive.ObjectIDFromHex(chHex)
		if err != nil {
			return upd, nil, "Unknown chapter."
		}
		upd.ChapterID = &oid
	}

	return upd, newInterests, ""
}

func (h *Handler) rerenderForm(ctx context.Context, w http.ResponseWriter, r *http.Request, setup bool, errMsg string) {
	data, err := h.newFormData(ctx, r, setup)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile form", err, "Could not load the form.", "/dashboard")
		return
	}
	data.Error = errMsg
	data.User = userFromForm(r)
	data.NewInterests = r.FormValue("new_interests")
	templates.Render(w, r, "profile_form", data)
}

// userFromForm rebuilds the submitted values so a failed validation does not
// lose the user's input.
func userFromForm(r *http.Request) models.User {
	u := models.User{
		FullName:       r.FormValue("full_name"),
		Phone:          r.FormValue("phone"),
		School:         r.FormValue("school"),
		Major:          r.FormValue("major"),
		Skills:         r.FormValue("skills"),
		IntakeCohort:   r.FormValue("intake_cohort"),
		MembershipType: r.FormValue("membership_type"),
		Interests:      cleanValues(r.Form["interests"]),
		Affiliations:   cleanValues(r.Form["affiliations"]),
		SocialLinks: models.SocialLinks{
			LinkedIn:  r.FormValue("linkedin"),
			Twitter:   r.FormValue("twitter"),
			Instagram: r.FormValue("instagram"),
		},
		EmergencyContactName:  r.FormValue("emergency_contact_name"),
		EmergencyContactPhone: r.FormValue("emergency_contact_phone"),
	}
	if oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(r.FormValue("chapter_id"))); err == nil {
		u.ChapterID = &oid
	}
	return u
}

// firstUnknown returns the first chosen value missing from the allowed list,
// or "" when every value is known.
func firstUnknown(chosen, allowed []string) string {
	known := make(map[string]struct{}, len(allowed))
	for _, v := range allowed {
		known[v] = struct{}{}
	}
	for _, v := range chosen {
		if _, ok := known[v]; !ok {
			return v
		}
	}
	return ""
}

// newFormData loads the chapter picker and vocabularies shared by the setup
// and edit forms.
func (h *Handler) newFormData(ctx context.Context, r *http.Request, setup bool) (profileFormData, error) {
	title, action := "Edit Profile", "/profile/edit"
	if setup {
		title, action = "Complete Your Profile", "/profile/setup"
	}

	data := profileFormData{
		BaseVM:          viewdata.NewBaseVM(r, title, "/profile"),
		IsSetup:         setup,
		Action:          action,
		MembershipTypes: models.MembershipTypes,
	}

	chapters, err := h.Chapters.ListActive(ctx)
	if err != nil {
		return data, err
	}
	data.Chapters = chapters

	tags, err := h.Metadata.Get(ctx, models.VocabularyTags)
	if err != nil {
		return data, err
	}
	data.InterestOptions = tags.Values

	affiliations, err := h.Metadata.Get(ctx, models.VocabularyAffiliations)
	if err != nil {
		return data, err
	}
	data.AffiliationOptions = affiliations.Values

	return data, nil
}

// cleanValues trims entries and drops blanks.
func cleanValues(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// splitNewInterests parses the free-form comma-separated interest input.
func splitNewInterests(raw string) []string {
	return cleanValues(strings.Split(raw, ","))
}
