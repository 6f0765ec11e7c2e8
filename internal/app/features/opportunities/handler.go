// internal/app/features/opportunities/handler.go
package opportunities

import (
	uierrors "github.com/dalemusser/chapterhub/internal/app/features/errors"
	metadatastore "github.com/dalemusser/chapterhub/internal/app/store/metadata"
	opportunitystore "github.com/dalemusser/chapterhub/internal/app/store/opportunities"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	DB            *mongo.Database
	Log           *zap.Logger
	ErrLog        *uierrors.ErrorLogger
	Opportunities *opportunitystore.Store
	Metadata      *metadatastore.Store
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:            db,
		Log:           logger,
		ErrLog:        errLog,
		Opportunities: opportunitystore.New(db),
		Metadata:      metadatastore.New(db),
	}
}
