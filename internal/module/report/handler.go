package report

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// ReportHandler handles REST API requests for reports.
type ReportHandler struct {
	svc domain.ReportService
}

// NewReportHandler creates a new ReportHandler with the given service.
func NewReportHandler(svc domain.ReportService) *ReportHandler {
	return &ReportHandler{svc: svc}
}

// Summary handles GET /api/v1/reports/summary.
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, summary)
}
