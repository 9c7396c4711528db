package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/eqprent/equipment-rental-backend/internal/file"
	"github.com/eqprent/equipment-rental-backend/internal/pkg/response"
)

// maxFilesPerRequest limits how many images one multipart request may carry.
const maxFilesPerRequest = 5

type Handler struct {
	service file.Service
}

func NewHandler(service file.Service) *Handler {
	return &Handler{service: service}
}

// Upload accepts up to five images in the "files" multipart field and
// returns their public URL paths.
func (h *Handler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no files provided"})
		return
	}
	if len(headers) > maxFilesPerRequest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many files in one request"})
		return
	}

	uploads := make([]*file.Upload, 0, len(headers))
	for _, header := range headers {
		u, err := h.service.Upload(c.Request.Context(), header)
		if err != nil {
			response.Error(c, err)
			return
		}
		uploads = append(uploads, u)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "files": uploads})
}
