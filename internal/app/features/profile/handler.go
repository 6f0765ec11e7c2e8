// internal/app/features/profile/handler.go
package profile

import (
	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	chapterstore "github.com/dalemusser/chapterhub/internal/app/store/chapters"
	metadatastore "github.com/dalemusser/chapterhub/internal/app/store/metadata"
	userstore "github.com/dalemusser/chapterhub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Users    *userstore.Store
	Chapters *chapterstore.Store
	Metadata *metadatastore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Users:    userstore.New(db),
		Chapters: chapterstore.New(db),
		Metadata: metadatastore.New(db),
	}
}
