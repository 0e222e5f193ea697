package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jrnavarro/coursetrack-client/internal/models"
	"github.com/jrnavarro/coursetrack-client/internal/page"
	appErrors "github.com/jrnavarro/coursetrack-client/pkg/errors"
	"github.com/jrnavarro/coursetrack-client/pkg/export"
	"github.com/jrnavarro/coursetrack-client/pkg/response"
)

// GuideHandler renders the read-only guide page: subjects by priority, the
// career recommendation, and the downloadable summary.
type GuideHandler struct {
	page          *page.GuidePage
	exportEnabled bool
}

// NewGuideHandler constructs the handler.
func NewGuideHandler(p *page.GuidePage, exportEnabled bool) *GuideHandler {
	return &GuideHandler{page: p, exportEnabled: exportEnabled}
}

// Register mounts the guide routes.
func (h *GuideHandler) Register(r gin.IRouter) {
	group := r.Group("/pages/guide")
	group.GET("", h.show)
	if h.exportEnabled {
		group.GET("/export", h.export)
	}
}

func (h *GuideHandler) show(c *gin.Context) {
	keys, groups := h.page.Groups()
	response.OK(c, gin.H{
		"priorities":     keys,
		"groups":         groups,
		"recommendation": h.page.Recommendation(),
	})
}

func (h *GuideHandler) export(c *gin.Context) {
	dataset := h.summaryDataset()

	switch c.DefaultQuery("format", "csv") {
	case "csv":
		data, err := export.CSV(dataset)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="guide-summary.csv"`)
		c.Data(http.StatusOK, "text/csv", data)
	case "pdf":
		data, err := export.PDF(dataset, "Course Guide Summary")
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf"))
			return
		}
		c.Header("Content-Disposition", `attachment; filename="guide-summary.pdf"`)
		c.Data(http.StatusOK, "application/pdf", data)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}

func (h *GuideHandler) summaryDataset() export.Dataset {
	headers := []string{"Priority", "Subject", "Category", "Status", "Grade"}
	dataset := export.Dataset{Headers: headers}

	keys, groups := h.page.Groups()
	for _, key := range keys {
		for _, s := range groups[key] {
			grade := ""
			if s.Grade != nil {
				grade = *s.Grade
			}
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Priority": key,
				"Subject":  s.SubjectName,
				"Category": string(s.Category),
				"Status":   string(s.Status),
				"Grade":    grade,
			})
		}
	}

	if rec := h.page.Recommendation(); rec != nil {
		for _, category := range models.SubjectCategories {
			if avg, ok := rec.CategoryAverages[category]; ok {
				dataset.Rows = append(dataset.Rows, map[string]string{
					"Priority": "AVERAGE",
					"Subject":  "",
					"Category": string(category),
					"Status":   "",
					"Grade":    fmt.Sprintf("%.2f", avg),
				})
			}
		}
	}
	return dataset
}
