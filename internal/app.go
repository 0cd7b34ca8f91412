package internal

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-orz/orz"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/xtbfolio/xtbfolio/internal/config"
	"github.com/xtbfolio/xtbfolio/internal/handler"
	"github.com/xtbfolio/xtbfolio/internal/middleware"
	"github.com/xtbfolio/xtbfolio/internal/models"
	"github.com/xtbfolio/xtbfolio/internal/service"
	"github.com/xtbfolio/xtbfolio/pkg/nostd"
	"github.com/xtbfolio/xtbfolio/web"
	"go.uber.org/zap"
)

func Run(configPath string) error {
	app := NewFolioApp()

	framework, err := orz.NewFramework(
		orz.WithConfig(configPath),
		orz.WithLoggerFromConfig(),
		orz.WithDatabase(),
		orz.WithHTTP(),
		orz.WithApplication(app),
	)
	if err != nil {
		return err
	}

	return framework.Run()
}

func NewFolioApp() orz.Application {
	return &FolioApp{}
}

var _ orz.Application = (*FolioApp)(nil)

type AppComponents struct {
	TransactionHandler *handler.TransactionHandler
	StatisticsHandler  *handler.StatisticsHandler
	ImportHandler      *handler.ImportHandler
	HealthHandler      *handler.HealthHandler

	TransactionService *service.TransactionService
	StatisticsService  *service.StatisticsService
	ImportService      *service.ImportService
}

type FolioApp struct {
	components *AppComponents
	conf       *config.Config
}

func (r *FolioApp) GetComponents() *AppComponents {
	return r.components
}

func (r *FolioApp) Configure(app *orz.App) error {
	logger := app.Logger()
	e := app.GetEcho()
	db := app.GetDatabase()

	var conf config.Config
	err := app.GetConfig().App.Unmarshal(&conf)
	if err != nil {
		return fmt.Errorf("failed to unmarshal config: %v", err)
	}
	conf.ApplyDefaults()

	components, err := InitializeApp(logger, db, &conf)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %v", err)
	}
	r.components = components
	r.conf = &conf

	if err := db.AutoMigrate(
		models.Transaction{},
	); err != nil {
		logger.Fatal("database auto migrate failed", zap.Error(err))
	}

	e.HidePort = true
	e.HideBanner = true

	e.Use(echomw.Gzip())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		Skipper:      echomw.DefaultSkipper,
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
	}))
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			sugar := logger.Sugar()
			sugar.Error(fmt.Sprintf("[PANIC RECOVER] %v %s\n", err, stack))
			return err
		},
	}))
	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog(logger))
	e.Use(WithErrorHandler(logger))

	customValidator := nostd.CustomValidator{Validator: validator.New()}
	if err := customValidator.TransInit(); err != nil {
		logger.Sugar().Fatal("failed to init custom validator", zap.Error(err))
	}
	e.Validator = &customValidator

	e.Use(echomw.StaticWithConfig(echomw.StaticConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().RequestURI
			if strings.HasPrefix(path, "/api") {
				return true
			}
			return false
		},
		Root:       "",
		Index:      "index.html",
		HTML5:      true,
		Browse:     false,
		IgnoreBase: false,
		Filesystem: http.FS(web.Assets()),
	}))

	api := e.Group("/api")
	{
		r.components.HealthHandler.RegisterRoutes(api)
		r.components.TransactionHandler.RegisterRoutes(api)
		r.components.StatisticsHandler.RegisterRoutes(api)
		r.components.ImportHandler.RegisterRoutes(api)
	}

	logger.Info("xtbfolio configured",
		zap.Int("statistics_default_limit", conf.Statistics.DefaultLimit),
		zap.Int("import_max_file_size_mb", conf.Import.MaxFileSizeMB))

	return nil
}
