// internal/app/features/chapters/handler.go
package chapters

import (
	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	chapterstore "github.com/dalemusser/chapterhub/internal/app/store/chapters"
	userstore "github.com/dalemusser/chapterhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Chapters *chapterstore.Store
	Users    *userstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Chapters: chapterstore.New(db),
		Users:    userstore.New(db),
	}
}
