package signing

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/inkstamp/sign-portal/internal/config"
	"github.com/inkstamp/sign-portal/internal/validate"
)

// Handler exposes the signing service over HTTP.
type Handler struct {
	cfg     config.SigningConfig
	service Service
	logger  *zap.Logger
}

// NewHandler creates a Handler.
func NewHandler(cfg config.SigningConfig, service Service, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, service: service, logger: logger}
}

// RegisterRoutes mounts the signing routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/sign", h.Sign)
}

// Sign handles POST /sign: one PDF as multipart form data in the "file"
// field, signed bytes as the response body. Both temp files are removed on
// every exit path.
func (h *Handler) Sign(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			h.tooLarge(c)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}

	if declared := file.Header.Get("Content-Type"); declared != "" && declared != validate.MediaTypePDF {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only PDF uploads are supported"})
		return
	}
	// Extension check independent of the declared media type.
	if !strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must have a .pdf extension"})
		return
	}

	inputPath := TempFilePath(h.cfg.TempDir, "upload", file.Filename)
	if err := c.SaveUploadedFile(file, inputPath); err != nil {
		os.Remove(inputPath)
		if isBodyTooLarge(err) {
			h.tooLarge(c)
			return
		}
		h.logger.Error("failed to store upload", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store upload"})
		return
	}
	defer os.Remove(inputPath)

	outputPath, err := h.service.SignDocument(c.Request.Context(), inputPath, file.Filename)
	if err != nil {
		if errors.Is(err, ErrEncrypted) {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "document is encrypted or password protected"})
			return
		}
		h.logger.Error("signing failed",
			zap.String("name", file.Filename),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "signing failed unexpectedly"})
		return
	}
	defer os.Remove(outputPath)

	c.FileAttachment(outputPath, "signed_"+sanitizeName(file.Filename))
}

func (h *Handler) tooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, gin.H{
		"error": fmt.Sprintf("file exceeds the %d MiB limit", h.cfg.MaxUploadBytes>>20),
	})
}

// BodyLimit rejects oversized request bodies at the transport boundary,
// before the handler runs. MaxBytesReader backstops bodies sent without a
// Content-Length.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": fmt.Sprintf("file exceeds the %d MiB limit", limit>>20),
			})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// RequestLogger logs one line per request with the zap logger.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()))
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
