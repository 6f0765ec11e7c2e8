// internal/app/features/approvals/handler.go
package approvals

import (
	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	chapterstore "github.com/dalemusser/chapterhub/internal/app/store/chapters"
	opportunitystore "github.com/dalemusser/chapterhub/internal/app/store/opportunities"
	userstore "github.com/dalemusser/chapterhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
	Users         *userstore.Store
	Chapters      *chapterstore.Store
	Opportunities *opportunitystore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Users:         userstore.New(db),
		Chapters:      chapterstore.New(db),
		Opportunities: opportunitystore.New(db),
	}
}
