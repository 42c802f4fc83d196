package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talentio/profilehub/internal/domain"
	"github.com/talentio/profilehub/internal/logger"
	"github.com/talentio/profilehub/internal/service"
	"gorm.io/gorm"
)

// reqLogger returns the request-scoped logger injected by the logging middleware.
func reqLogger(c *gin.Context) *logger.Logger {
	return logger.FromContext(c.Request.Context())
}

// ProfileHandler handles profile build and retrieval endpoints.
type ProfileHandler struct {
	builder *service.BuilderService
}

// NewProfileHandler creates a new profile handler.
// Parameters:
//   - builder: profile build service.
// Returns:
//   - *ProfileHandler: initialized handler.
func NewProfileHandler(builder *service.BuilderService) *ProfileHandler {
	return &ProfileHandler{
		builder: builder,
	}
}

// sourceRefRequest is one source reference in an import request.
type sourceRefRequest struct {
	Kind    string `json:"kind" binding:"required"`
	Locator string `json:"locator" binding:"required"`
}

// importRequest is the body of POST /api/v1/profiles/import.
type importRequest struct {
	Identity string             `json:"identity"`
	Sources  []sourceRefRequest `json:"sources" binding:"required"`
}

// Import handles POST /api/v1/profiles/import.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ProfileHandler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body: " + err.Error(),
		})
		return
	}

	refs := make([]domain.SourceReference, 0, len(req.Sources))
	for _, src := range req.Sources {
		refs = append(refs, domain.SourceReference{
			Kind:    domain.SourceKind(src.Kind),
			Locator: src.Locator,
		})
	}

	profile, err := h.builder.Build(c.Request.Context(), req.Identity, refs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNoUsableData):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			reqLogger(c).WithError(err).Error("Profile build failed")
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to build profile",
			})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Get handles GET /api/v1/profiles/:id.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ProfileHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Profile ID is required",
		})
		return
	}

	profile, err := h.builder.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Profile not found",
			})
			return
		}
		reqLogger(c).WithError(err).Error("Profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load profile",
		})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// List handles GET /api/v1/profiles.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *ProfileHandler) List(c *gin.Context) {
	summaries, err := h.builder.ListProfiles(c.Request.Context())
	if err != nil {
		reqLogger(c).WithError(err).Error("Profile list failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list profiles",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profiles": summaries,
		"total":    len(summaries),
	})
}
