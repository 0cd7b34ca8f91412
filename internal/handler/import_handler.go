package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xtbfolio/xtbfolio/internal/service"
	"github.com/xtbfolio/xtbfolio/internal/xe"
	"go.uber.org/zap"
)

// ImportHandler accepts XTB statement uploads.
type ImportHandler struct {
	logger        *zap.Logger
	importService *service.ImportService
}

func NewImportHandler(logger *zap.Logger, importService *service.ImportService) *ImportHandler {
	return &ImportHandler{
		logger:        logger,
		importService: importService,
	}
}

// Import parses and persists an uploaded statement
// POST /api/import (multipart, field "file")
func (h *ImportHandler) Import(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return xe.ErrFileMissing
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Error("failed to open uploaded file", zap.Error(err))
		return xe.ErrFileMissing
	}
	defer file.Close()

	result, err := h.importService.ImportStatement(ctx, file, fileHeader.Size)
	if err != nil {
		h.logger.Warn("statement import rejected",
			zap.String("filename", fileHeader.Filename),
			zap.Int64("size", fileHeader.Size),
			zap.Error(err))
		return err
	}

	return c.JSON(http.StatusOK, result)
}

func (h *ImportHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/import", h.Import)
}
