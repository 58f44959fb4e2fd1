package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Kotlang/leadsGo/logger"
	"github.com/Kotlang/leadsGo/models"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// exportRowCap bounds export memory; the grid's filter set rarely matches
// anywhere near this many rows.
const exportRowCap = 10000

var leadExportHeader = []string{
	"First Name",
	"Last Name",
	"Company",
	"City",
	"State",
	"Email",
	"Phone",
	"Source",
	"Status",
	"Score",
	"Lead Value",
	"Qualified",
	"Last Activity",
	"Created",
}

// ExportLeads writes the leads matching the current filter set as an xlsx
// attachment. It applies exactly the same predicate as FetchLeads.
func (s *LeadService) ExportLeads(c *gin.Context) {
	filters := parseLeadFilters(c)

	leads, _, err := s.leads.GetLeads(c.Request.Context(), filters, 1, exportRowCap)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	buf, err := generateLeadsExcel(leads)
	if err != nil {
		logger.Error("Error generating leads export", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	filename := fmt.Sprintf("leads-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf)
}

func generateLeadsExcel(leads []models.LeadModel) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Leads"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, err
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	for col, title := range leadExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return nil, err
		}
	}

	for row, lead := range leads {
		values := []interface{}{
			lead.FirstName,
			lead.LastName,
			lead.Company,
			lead.City,
			lead.State,
			lead.Email,
			lead.Phone,
			lead.Source,
			lead.Status,
			optionalInt(lead.Score),
			optionalFloat(lead.LeadValue),
			lead.IsQualified,
			optionalTime(lead.LastActivityAt),
			lead.CreatedAt.Format(time.RFC3339),
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func optionalInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func optionalFloat(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func optionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format(time.RFC3339)
}
