package service

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Kotlang/leadsGo/db"
	"github.com/Kotlang/leadsGo/logger"
	"github.com/Kotlang/leadsGo/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

type LeadService struct {
	leads db.LeadRepositoryInterface
}

func ProvideLeadService(leads db.LeadRepositoryInterface) *LeadService {
	return &LeadService{leads: leads}
}

type leadListResponse struct {
	Data       []models.LeadModel `json:"data"`
	Total      int64              `json:"total"`
	Page       int64              `json:"page"`
	Limit      int64              `json:"limit"`
	TotalPages int64              `json:"totalPages"`
}

// FetchLeads serves the filtered, paginated grid query.
func (s *LeadService) FetchLeads(c *gin.Context) {
	page, limit := parsePagination(c)
	filters := parseLeadFilters(c)

	leads, total, err := s.leads.GetLeads(c.Request.Context(), filters, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	totalPages := int64(math.Ceil(float64(total) / float64(limit)))

	c.JSON(http.StatusOK, leadListResponse{
		Data:       leads,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}

func (s *LeadService) CreateLead(c *gin.Context) {
	var patch models.LeadPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	// start from schema defaults, then apply the submitted fields
	lead := models.NewLead()
	patch.Apply(lead)

	if err := s.leads.Save(c.Request.Context(), lead); err != nil {
		s.writeLeadError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lead)
}

func (s *LeadService) GetLeadById(c *gin.Context) {
	lead, err := s.leads.FindOneById(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeLeadError(c, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

func (s *LeadService) UpdateLead(c *gin.Context) {
	var patch models.LeadPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	lead, err := s.leads.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		s.writeLeadError(c, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

func (s *LeadService) DeleteLead(c *gin.Context) {
	if err := s.leads.DeleteById(c.Request.Context(), c.Param("id")); err != nil {
		s.writeLeadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Lead deleted successfully"})
}

func (s *LeadService) writeLeadError(c *gin.Context, err error) {
	var validationErr *models.ValidationError

	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Lead not found"})
	case errors.Is(err, db.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Lead with this email already exists"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": validationErr.Reason})
	default:
		logger.Error("Lead operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
	}
}

func parsePagination(c *gin.Context) (page, limit int64) {
	page = defaultPage
	limit = defaultLimit

	if v, err := strconv.ParseInt(c.Query("page"), 10, 64); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.ParseInt(c.Query("limit"), 10, 64); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

// parseLeadFilters reads the optional query parameters into a typed filter
// set. Values that fail to parse impose no constraint.
func parseLeadFilters(c *gin.Context) *db.LeadFilters {
	filters := &db.LeadFilters{
		Company: c.Query("company"),
		City:    c.Query("city"),
		State:   c.Query("state"),

		Status: splitList(c.Query("status")),
		Source: splitList(c.Query("source")),

		ScoreMin: parseIntParam(c.Query("score_min")),
		ScoreMax: parseIntParam(c.Query("score_max")),

		LeadValueMin: parseFloatParam(c.Query("lead_value_min")),
		LeadValueMax: parseFloatParam(c.Query("lead_value_max")),

		CreatedFrom: parseDateParam(c.Query("created_from")),
		CreatedTo:   parseDateParam(c.Query("created_to")),

		LastActivityFrom: parseDateParam(c.Query("last_activity_from")),
		LastActivityTo:   parseDateParam(c.Query("last_activity_to")),
	}

	if v, ok := c.GetQuery("is_qualified"); ok {
		qualified := v == "true"
		filters.IsQualified = &qualified
	}

	return filters
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}

	parts := []string{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func parseIntParam(value string) *int {
	if value == "" {
		return nil
	}
	v, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &v
}

func parseFloatParam(value string) *float64 {
	if value == "" {
		return nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &v
}

var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDateParam(value string) *time.Time {
	if value == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
