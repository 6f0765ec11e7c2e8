// internal/app/features/resources/handler.go
package resources

import (
	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	resourcestore "github.com/dalemusser/chapterhub/internal/app/store/resources"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	ErrLog    *uierrors.ErrorLogger
	Resources *resourcestore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		ErrLog:    errLog,
		Resources: resourcestore.New(db),
	}
}
