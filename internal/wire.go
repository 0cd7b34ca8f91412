//go:build wireinject
// +build wireinject

package internal

import (
	"github.com/google/wire"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xtbfolio/xtbfolio/internal/config"
	"github.com/xtbfolio/xtbfolio/internal/handler"
	"github.com/xtbfolio/xtbfolio/internal/service"
)

var (
	handlerSet = wire.NewSet(
		handler.NewTransactionHandler,
		handler.NewStatisticsHandler,
		handler.NewImportHandler,
		handler.NewHealthHandler,
	)

	serviceSet = wire.NewSet(
		service.NewTransactionService,
		service.NewStatisticsService,
		service.NewImportService,
	)
)

func InitializeApp(logger *zap.Logger, db *gorm.DB, conf *config.Config) (*AppComponents, error) {
	wire.Build(
		handlerSet,
		serviceSet,
		wire.Struct(new(AppComponents), "*"),
	)
	return nil, nil
}
