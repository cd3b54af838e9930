package appointment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nidoapp/nido/internal/auth"
)

// RegisterRoutes mounts appointment operations under the provided group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/appointments", handler.createAppointment)
	group.GET("/appointments", handler.listAppointments)
	group.PUT("/appointments/:appointmentID", handler.updateAppointment)
	group.DELETE("/appointments/:appointmentID", handler.deleteAppointment)
}

type httpHandler struct {
	service *Service
}

type appointmentRequest struct {
	Title           string  `json:"title" binding:"required"`
	Description     *string `json:"description"`
	AppointmentDate string  `json:"appointment_date" binding:"required"`
	Location        *string `json:"location"`
	DoctorName      *string `json:"doctor_name"`
}

func (r appointmentRequest) toInput() (Input, error) {
	parsed, err := time.Parse(time.RFC3339, r.AppointmentDate)
	if err != nil {
		return Input{}, err
	}
	return Input{
		Title:           r.Title,
		Description:     r.Description,
		AppointmentDate: parsed,
		Location:        r.Location,
		DoctorName:      r.DoctorName,
	}, nil
}

func (h *httpHandler) createAppointment(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment_date, expected RFC 3339"})
		return
	}

	a, err := h.service.Create(c.Request.Context(), ownerID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrDateRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create appointment"})
		}
		return
	}

	c.JSON(http.StatusCreated, a)
}

func (h *httpHandler) listAppointments(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	appointments, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list appointments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

func (h *httpHandler) updateAppointment(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	appointmentID, err := uuid.Parse(c.Param("appointmentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	var req appointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, err := req.toInput()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment_date, expected RFC 3339"})
		return
	}

	a, err := h.service.Update(c.Request.Context(), ownerID, appointmentID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
		case errors.Is(err, ErrTitleRequired), errors.Is(err, ErrDateRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update appointment"})
		}
		return
	}

	c.JSON(http.StatusOK, a)
}

func (h *httpHandler) deleteAppointment(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	appointmentID, err := uuid.Parse(c.Param("appointmentID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid appointment id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), ownerID, appointmentID); err != nil {
		if errors.Is(err, ErrAppointmentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "appointment not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete appointment"})
		return
	}

	c.Status(http.StatusNoContent)
}
