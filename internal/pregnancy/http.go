package pregnancy

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nidoapp/nido/internal/auth"
)

// RegisterRoutes mounts pregnancy info operations under the provided group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.GET("/pregnancy", handler.getInfo)
	group.PUT("/pregnancy", handler.upsertInfo)
}

type httpHandler struct {
	service *Service
}

type upsertRequest struct {
	PartnerName    *string `json:"partner_name"`
	DueDate        *string `json:"due_date"`
	LastPeriodDate *string `json:"last_period_date"`
	DoctorName     *string `json:"doctor_name"`
	Hospital       *string `json:"hospital"`
	BloodType      *string `json:"blood_type"`
}

func (h *httpHandler) getInfo(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	overview, err := h.service.Get(c.Request.Context(), ownerID)
	if err != nil {
		if errors.Is(err, ErrInfoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "pregnancy info not set up"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load pregnancy info"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

func (h *httpHandler) upsertInfo(c *gin.Context) {
	ownerID, _, ok := auth.RequireUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := UpsertInput{
		PartnerName: req.PartnerName,
		DoctorName:  req.DoctorName,
		Hospital:    req.Hospital,
		BloodType:   req.BloodType,
	}

	var err error
	if input.DueDate, err = parseDate(req.DueDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid due_date, expected YYYY-MM-DD"})
		return
	}
	if input.LastPeriodDate, err = parseDate(req.LastPeriodDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid last_period_date, expected YYYY-MM-DD"})
		return
	}

	overview, err := h.service.Upsert(c.Request.Context(), ownerID, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save pregnancy info"})
		return
	}

	c.JSON(http.StatusOK, overview)
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
