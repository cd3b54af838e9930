package note

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nidoapp/nido/internal/auth"
)

// RegisterRoutes mounts note operations under the provided group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/notes", handler.createNote)
	group.GET("/notes", handler.listNotes)
	group.PUT("/notes/:noteID", handler.updateNote)
	group.DELETE("/notes/:noteID", handler.deleteNote)
}

type httpHandler struct {
	service *Service
}

type createNoteRequest struct {
	NoteDate string   `json:"note_date" binding:"required"`
	Symptoms string   `json:"symptoms"`
	Mood     string   `json:"mood"`
	Weight   *float64 `json:"weight" binding:"omitempty,gt=0"`
	Notes    string   `json:"notes"`
}

type updateNoteRequest struct {
	Symptoms string   `json:"symptoms"`
	Mood     string   `json:"mood"`
	Weight   *float64 `json:"weight" binding:"omitempty,gt=0"`
	Notes    string   `json:"notes"`
}

func (h *httpHandler) createNote(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	noteDate, err := time.Parse("2006-01-02", req.NoteDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note_date, expected YYYY-MM-DD"})
		return
	}

	n, err := h.service.Create(c.Request.Context(), ownerID, CreateInput{
		NoteDate: noteDate,
		Symptoms: req.Symptoms,
		Mood:     req.Mood,
		Weight:   req.Weight,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrDateRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create note"})
		return
	}

	c.JSON(http.StatusCreated, n)
}

func (h *httpHandler) listNotes(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	notes, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list notes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (h *httpHandler) updateNote(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	noteID, err := uuid.Parse(c.Param("noteID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := h.service.Update(c.Request.Context(), ownerID, noteID, UpdateInput{
		Symptoms: req.Symptoms,
		Mood:     req.Mood,
		Weight:   req.Weight,
		Notes:    req.Notes,
	})
	if err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update note"})
		return
	}

	c.JSON(http.StatusOK, n)
}

func (h *httpHandler) deleteNote(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	noteID, err := uuid.Parse(c.Param("noteID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid note id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, noteID); err != nil {
		if errors.Is(err, ErrNoteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "note not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete note"})
		return
	}

	c.Status(http.StatusNoContent)
}
