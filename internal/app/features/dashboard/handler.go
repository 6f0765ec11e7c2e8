// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	"github.com/dalemusser/chapterhub/internal/app/policy/memberpolicy"
	opportunitystore "github.com/dalemusser/chapterhub/internal/app/store/opportunities"
	userstore "github.com/dalemusser/chapterhub/internal/app/store/users"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
	Users         *userstore.Store
	Opportunities *opportunitystore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Users:         userstore.New(db),
		Opportunities: opportunitystore.New(db),
	}
}

type dashboardData struct {
	viewdata.BaseVM
	IsStaff bool
	IsAdmin bool

	PendingMembers       int64
	PendingOpportunities int64
}

// ServeDashboard renders the signed-in landing page. Staff see pending
// approval counts; admins additionally see the opportunity review count.
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	role, name, _, ok := authz.UserCtx(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := dashboardData{
		BaseVM:  viewdata.NewBaseVM(r, "Dashboard", "/"),
		IsStaff: role == "admin" || role == "moderator",
		IsAdmin: role == "admin",
	}

	if data.IsStaff {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		scope := memberpolicy.ApprovalScope(r)
		if scope.CanList {
			n, err := h.Users.CountPendingApprovals(ctx, scope.ChapterID)
			if err != nil {
				h.ErrLog.LogServerError(w, r, "count pending approvals", err, "Could not load the dashboard.", "/")
				return
			}
			data.PendingMembers = n
		}
		if data.IsAdmin {
			n, err := h.Opportunities.CountPending(ctx)
			if err != nil {
				h.ErrLog.LogServerError(w, r, "count pending opportunities", err, "Could not load the dashboard.", "/")
				return
			}
			data.PendingOpportunities = n
		}
	}

	h.Log.Debug("dashboard served", zap.String("user", name), zap.String("role", role))
	templates.Render(w, r, "dashboard", data)
}
