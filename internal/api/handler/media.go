package handler

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/talentio/profilehub/internal/domain"
	"github.com/talentio/profilehub/internal/enrich"
	"github.com/talentio/profilehub/internal/storage"
)

const (
	maxImageSize  = 10 << 20 // 10 MB
	maxResumeSize = 5 << 20  // 5 MB
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

var allowedResumeExts = map[string]bool{
	".txt": true,
	".md":  true,
}

// MediaHandler handles standalone image analysis and resume uploads.
type MediaHandler struct {
	enricher enrich.Enricher
	store    storage.ObjectStorage
}

// NewMediaHandler creates a new media handler.
// Parameters:
//   - enricher: AI enrichment backend for image analysis.
//   - store: object storage for uploaded resumes.
// Returns:
//   - *MediaHandler: initialized handler.
func NewMediaHandler(enricher enrich.Enricher, store storage.ObjectStorage) *MediaHandler {
	return &MediaHandler{
		enricher: enricher,
		store:    store,
	}
}

// AnalyzeImage handles POST /api/v1/analyze-image. It accepts a multipart
// image upload and returns descriptive tags without touching any profile.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MediaHandler) AnalyzeImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image file is required",
		})
		return
	}
	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Image exceeds the 10MB limit",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Unsupported image type %q", ext),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		reqLogger(c).WithError(err).Error("Failed to open uploaded image")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read upload",
		})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		reqLogger(c).WithError(err).Error("Failed to read uploaded image")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read upload",
		})
		return
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "File is not a decodable image",
		})
		return
	}

	tags, err := h.enricher.AnalyzeImageData(c.Request.Context(), data, format)
	if err != nil {
		reqLogger(c).WithError(err).Error("Image analysis failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Image analysis is unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags":   tags,
		"format": format,
		"width":  cfg.Width,
		"height": cfg.Height,
	})
}

// UploadResume handles POST /api/v1/resumes. The stored key doubles as the
// locator for a resume source reference in a later import request.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *MediaHandler) UploadResume(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Resume file is required",
		})
		return
	}
	if fileHeader.Size > maxResumeSize {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Resume exceeds the 5MB limit",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedResumeExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Unsupported resume type %q, plain text expected", ext),
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		reqLogger(c).WithError(err).Error("Failed to open uploaded resume")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read upload",
		})
		return
	}
	defer file.Close()

	key := "resumes/" + uuid.New().String() + ext
	if err := h.store.Upload(c.Request.Context(), key, file, fileHeader.Size, "text/plain"); err != nil {
		reqLogger(c).WithError(err).Error("Failed to store uploaded resume")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store resume",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"locator": key,
		"kind":    string(domain.KindResume),
		"url":     h.store.GetURL(key),
	})
}
