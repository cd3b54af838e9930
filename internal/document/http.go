package document

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nidoapp/nido/internal/auth"
	"github.com/nidoapp/nido/internal/metrics"
)

// RegisterRoutes mounts document vault operations under the provided group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/documents", handler.uploadDocument)
	group.GET("/documents", handler.listDocuments)
	group.GET("/documents/:documentID/link", handler.getViewLink)
	group.DELETE("/documents/:documentID", handler.deleteDocument)
}

type httpHandler struct {
	service *Service
}

func (h *httpHandler) uploadDocument(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}

	category, ok := ParseCategory(c.PostForm("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
		return
	}

	input := UploadInput{
		Title:    c.PostForm("title"),
		Category: category,
	}
	if desc := c.PostForm("description"); desc != "" {
		input.Description = &desc
	}
	if raw := c.PostForm("document_date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document_date, expected YYYY-MM-DD"})
			return
		}
		input.DocumentDate = &parsed
	}

	rec, err := h.service.Upload(c.Request.Context(), ownerID, fileHeader, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrFileRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrObjectExists):
			c.JSON(http.StatusConflict, gin.H{"error": "storage key collision, retry the upload"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload document"})
		}
		return
	}

	metrics.DocumentUploaded()
	c.JSON(http.StatusCreated, rec)
}

func (h *httpHandler) listDocuments(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	views, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list documents"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"documents": views})
}

func (h *httpHandler) getViewLink(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	docID, err := uuid.Parse(c.Param("documentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	link, err := h.service.ViewLink(c.Request.Context(), ownerID, docID)
	if err != nil {
		metrics.SignedLinkFailed()
		switch {
		case errors.Is(err, ErrDocumentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		case errors.Is(err, ErrLinkUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not issue view link"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue view link"})
		}
		return
	}

	metrics.SignedLinkIssued()
	c.JSON(http.StatusOK, gin.H{
		"url":        link,
		"expires_at": time.Now().Add(SignedURLTTL).UTC(),
	})
}

func (h *httpHandler) deleteDocument(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	docID, err := uuid.Parse(c.Param("documentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid document id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, docID); err != nil {
		switch {
		case errors.Is(err, ErrDocumentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "document not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete document"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
