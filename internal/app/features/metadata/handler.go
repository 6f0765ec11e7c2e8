// internal/app/features/metadata/handler.go
package metadata

import (
	"context"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	metadatastore "github.com/dalemusser/chapterhub/internal/app/store/metadata"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/chapterhub/internal/app/system/viewdata"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// vocabularies editable on the admin screen, in display order.
var editable = []struct {
	Name  string
	Label string
	Open  bool // members may add values through their profile
}{
	{models.VocabularyTags, "Interest Tags", true},
	{models.VocabularyAffiliations, "Affiliations", false},
}

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Metadata *metadatastore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Metadata: metadatastore.New(db),
	}
}

type vocabView struct {
	Name   string
	Label  string
	Open   bool
	Values string // newline separated for the textarea
	Count  int
}

type metadataData struct {
	viewdata.BaseVM
	Vocabularies []vocabView
	Saved        string
}

// ServeEditor renders the vocabulary editor. Admin only.
func (h *Handler) ServeEditor(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		uierrors.RenderForbidden(w, r, "/dashboard")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	data := metadataData{
		BaseVM: viewdata.NewBaseVM(r, "Metadata", "/dashboard"),
		Saved:  r.URL.Query().Get("saved"),
	}
	for _, v := range editable {
		vocab, err := h.Metadata.Get(ctx, v.Name)
		if err != nil {
			h.ErrLog.LogServerError(w, r, "load vocabulary", err, "Could not load metadata.", "/dashboard")
			return
		}
		data.Vocabularies = append(data.Vocabularies, vocabView{
			Name:   v.Name,
			Label:  v.Label,
			Open:   v.Open,
			Values: strings.Join(vocab.Values, "\n"),
			Count:  len(vocab.Values),
		})
	}

	templates.Render(w, r, "metadata", data)
}

// HandleSavePost replaces one vocabulary's values wholesale, preserving the
// submitted order. Admin only.
func (h *Handler) HandleSavePost(w http.ResponseWriter, r *http.Request) {
	if !authz.IsAdmin(r) {
		uierrors.RenderForbidden(w, r, "/dashboard")
		return
	}
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/admin/metadata")
		return
	}

	name := r.FormValue("name")
	if !knownVocabulary(name) {
		h.ErrLog.LogBadRequest(w, r, "unknown vocabulary", nil, "Unknown vocabulary.", "/admin/metadata")
		return
	}

	values := strings.Split(r.FormValue("values"), "\n")
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}

	_, adminName, _, _ := authz.UserCtx(r)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Metadata.Save(ctx, name, values, adminName); err != nil {
		h.ErrLog.LogServerError(w, r, "save vocabulary", err, "Could not save the vocabulary.", "/admin/metadata")
		return
	}

	h.Log.Info("vocabulary saved", zap.String("vocabulary", name), zap.String("by", adminName))
	http.Redirect(w, r, "/admin/metadata?saved="+name, http.StatusSeeOther)
}

func knownVocabulary(name string) bool {
	for _, v := range editable {
		if v.Name == name {
			return true
		}
	}
	return false
}
