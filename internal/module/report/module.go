package report

import "github.com/gin-gonic/gin"

// ReportModule implements the app.Module interface for reports.
type ReportModule struct {
	handler *ReportHandler
}

// NewModule creates a new ReportModule. Panics if h is nil.
func NewModule(h *ReportHandler) *ReportModule {
	if h == nil {
		panic("report.NewModule: handler must not be nil")
	}
	return &ReportModule{handler: h}
}

// RegisterRoutes registers report API routes.
func (m *ReportModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/reports/summary", m.handler.Summary)
}
