// internal/app/features/login/handler.go
package login

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	chapterstore "github.com/dalemusser/chapterhub/internal/app/store/chapters"
	userstore "github.com/dalemusser/chapterhub/internal/app/store/users"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
	"github.com/dalemusser/chapterhub/internal/app/system/resettoken"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	SessionMgr    *auth.SessionManager
	ErrLog        *uierrors.ErrorLogger
	Users         *userstore.Store
	Chapters      *chapterstore.Store
	ResetTokens   *resettoken.Issuer
	GoogleEnabled bool
}

func NewHandler(
	db *mongo.Database,
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	resetTokens *resettoken.Issuer,
	googleEnabled bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		SessionMgr:    sessionMgr,
		ErrLog:        errLog,
		Users:         userstore.New(db),
		Chapters:      chapterstore.New(db),
		ResetTokens:   resetTokens,
		GoogleEnabled: googleEnabled,
	}
}

type loginFormData struct {
	viewdata.BaseVM
	Error         string
	Email         string
	ReturnURL     string
	GoogleEnabled bool
}

type signupFormData struct {
	viewdata.BaseVM
	Error    string
	FullName string
	Email    string
	Chapters []models.Chapter
}

type forgotFormData struct {
	viewdata.BaseVM
	Error string
	Email string
	Sent  bool
}

type resetFormData struct {
	viewdata.BaseVM
	Error string
	Token string
}

// ServeLogin handles GET /login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
		ReturnURL:     query.Get(r, "return"),
		GoogleEnabled: h.GoogleEnabled,
	})
}

// HandleLoginPost handles POST /login.
func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse login form failed", err, "Invalid form data.", "/login")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	ret := r.FormValue("return")

	if email == "" || password == "" {
		h.renderLoginError(w, r, "Please enter your email and password.", email, ret)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err == mongo.ErrNoDocuments {
		h.renderLoginError(w, r, "Incorrect email or password.", email, ret)
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "login lookup failed", err, "A database error occurred.", "/login")
		return
	}

	if u.PasswordHash == "" {
		// Google-only account.
		h.renderLoginError(w, r, "This account signs in with Google.", email, ret)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		h.Log.Info("failed sign-in", zap.String("email", email))
		h.renderLoginError(w, r, "Incorrect email or password.", email, ret)
		return
	}

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "session save failed", err, "Could not start your session.", "/login")
		return
	}

	h.redirectAfterAuth(w, r, u, ret)
}

// ServeSignup handles GET /login/signup.
func (h *Handler) ServeSignup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	chapters, err := h.Chapters.ListActive(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list chapters failed", err, "A database error occurred.", "/login")
		return
	}

	templates.Render(w, r, "signup", signupFormData{
		BaseVM:   viewdata.NewBaseVM(r, "Create account", "/login"),
		Chapters: chapters,
	})
}

// HandleSignupPost handles POST /login/signup. New accounts always enter the
// approval queue; signing up does not grant access to member-only pages
// until an admin or moderator approves.
func (h *Handler) HandleSignupPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse signup form failed", err, "Invalid form data.", "/login/signup")
		return
	}

	fullName := normalize.Name(r.FormValue("full_name"))
	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")
	chapterHex := strings.TrimSpace(r.FormValue("chapter_id"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	fail := func(msg string) {
		chapters, _ := h.Chapters.ListActive(ctx)
		templates.Render(w, r, "signup", signupFormData{
			BaseVM:   viewdata.NewBaseVM(r, "Create account", "/login"),
			Error:    msg,
			FullName: fullName,
			Email:    email,
			Chapters: chapters,
		})
	}

	switch {
	case fullName == "":
		fail("Please enter your full name.")
		return
	case email == "" || !strings.Contains(email, "@"):
		fail("Please enter a valid email address.")
		return
	case len(password) < 8:
		fail("Password must be at least 8 characters.")
		return
	case password != confirm:
		fail("Passwords do not match.")
		return
	}

	var chapterID *primitive.ObjectID
	if chapterHex != "" {
		oid, err := primitive.ObjectIDFromHex(chapterHex)
		if err != nil {
			fail("Unknown chapter selection.")
			return
		}
		chapterID = &oid
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Could not create your account.", "/login/signup")
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		FullName:     fullName,
		Email:        email,
		PasswordHash: string(hash),
		AuthMethod:   "password",
		ChapterID:    chapterID,
	})
	if err == userstore.ErrDuplicateEmail {
		fail("An account with this email already exists.")
		return
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create account failed", err, "Could not create your account.", "/login/signup")
		return
	}

	h.Log.Info("account created",
		zap.String("user_id", u.ID.Hex()),
		zap.String("email", u.Email))

	if err := h.SessionMgr.SignIn(w, r, u.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "session save failed", err, "Could not start your session.", "/login")
		return
	}

	// New accounts go straight to profile setup.
	http.Redirect(w, r, "/profile/setup", http.StatusSeeOther)
}

// ServeForgot handles GET /login/forgot.
func (h *Handler) ServeForgot(w http.ResponseWriter, r *http.Request) {
	templates.Render(w, r, "forgot_password", forgotFormData{
		BaseVM: viewdata.NewBaseVM(r, "Reset password", "/login"),
	})
}

// HandleForgotPost handles POST /login/forgot. The response is the same
// whether or not the email exists, so the form cannot be used to probe for
// accounts. The signed reset link is written to the log for delivery; there
// is no outbound mailer in this deployment.
func (h *Handler) HandleForgotPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse forgot form failed", err, "Invalid form data.", "/login/forgot")
		return
	}

	email := normalize.Email(r.FormValue("email"))
	if email == "" {
		templates.Render(w, r, "forgot_password", forgotFormData{
			BaseVM: viewdata.NewBaseVM(r, "Reset password", "/login"),
			Error:  "Please enter your email address.",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err == nil {
		tok, terr := h.ResetTokens.Issue(u.ID.Hex())
		if terr != nil {
			h.ErrLog.LogServerError(w, r, "issue reset token failed", terr, "Could not start a password reset.", "/login/forgot")
			return
		}
		h.Log.Info("password reset requested",
			zap.String("email", email),
			zap.String("reset_path", "/login/reset?token="+tok))
	} else if err != mongo.ErrNoDocuments {
		h.ErrLog.LogServerError(w, r, "forgot lookup failed", err, "A database error occurred.", "/login/forgot")
		return
	}

	templates.Render(w, r, "forgot_password", forgotFormData{
		BaseVM: viewdata.NewBaseVM(r, "Reset password", "/login"),
		Email:  email,
		Sent:   true,
	})
}

// ServeReset handles GET /login/reset?token=...
func (h *Handler) ServeReset(w http.ResponseWriter, r *http.Request) {
	tok := query.Get(r, "token")
	if _, err := h.ResetTokens.Verify(tok); err != nil {
		uierrors.RenderBadRequest(w, r, "This reset link is invalid or has expired.", "/login/forgot")
		return
	}

	templates.Render(w, r, "reset_password", resetFormData{
		BaseVM: viewdata.NewBaseVM(r, "Choose a new password", "/login"),
		Token:  tok,
	})
}

// HandleResetPost handles POST /login/reset.
func (h *Handler) HandleResetPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse reset form failed", err, "Invalid form data.", "/login/forgot")
		return
	}

	tok := r.FormValue("token")
	password := r.FormValue("password")
	confirm := r.FormValue("password_confirm")

	userHex, err := h.ResetTokens.Verify(tok)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "This reset link is invalid or has expired.", "/login/forgot")
		return
	}

	fail := func(msg string) {
		templates.Render(w, r, "reset_password", resetFormData{
			BaseVM: viewdata.NewBaseVM(r, "Choose a new password", "/login"),
			Error:  msg,
			Token:  tok,
		})
	}
	if len(password) < 8 {
		fail("Password must be at least 8 characters.")
		return
	}
	if password != confirm {
		fail("Passwords do not match.")
		return
	}

	userID, err := primitive.ObjectIDFromHex(userHex)
	if err != nil {
		uierrors.RenderBadRequest(w, r, "This reset link is invalid or has expired.", "/login/forgot")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "hash password failed", err, "Could not update your password.", "/login/forgot")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.SetPassword(ctx, userID, string(hash)); err != nil {
		h.ErrLog.LogServerError(w, r, "set password failed", err, "Could not update your password.", "/login/forgot")
		return
	}

	h.Log.Info("password reset completed", zap.String("user_id", userHex))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// helpers

func (h *Handler) renderLoginError(w http.ResponseWriter, r *http.Request, msg, email, ret string) {
	templates.Render(w, r, "login", loginFormData{
		BaseVM:        viewdata.NewBaseVM(r, "Sign in", "/"),
		Error:         msg,
		Email:         email,
		ReturnURL:     ret,
		GoogleEnabled: h.GoogleEnabled,
	})
}

// redirectAfterAuth sends a just-authenticated user to the right place:
// profile setup when onboarding is unfinished, the safe return URL when one
// was given, the dashboard otherwise.
func (h *Handler) redirectAfterAuth(w http.ResponseWriter, r *http.Request, u *models.User, ret string) {
	dest := "/dashboard"
	if !u.ProfileCompleted {
		dest = "/profile/setup"
	} else if ret != "" {
		dest = urlutil.SafeReturn(ret, "", "/dashboard")
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}
