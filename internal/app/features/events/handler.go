// internal/app/features/events/handler.go
package events

import (
	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	chapterstore "github.com/dalemusser/chapterhub/internal/app/store/chapters"
	eventstore "github.com/dalemusser/chapterhub/internal/app/store/events"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB       *mongo.Database
	Log      *zap.Logger
	ErrLog   *uierrors.ErrorLogger
	Events   *eventstore.Store
	Chapters *chapterstore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:       db,
		Log:      logger,
		ErrLog:   errLog,
		Events:   eventstore.New(db),
		Chapters: chapterstore.New(db),
	}
}
