package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madaris_backend/internals/constants"
	"madaris_backend/internals/features/reports/cache"
	"madaris_backend/internals/features/reports/controller"
	"madaris_backend/internals/middlewares/auth"
)

// ReportRoutes mounts the reporting surface. Reports are an admin/supervisor
// feature, so the whole group sits behind the token check.
func ReportRoutes(api fiber.Router, db *gorm.DB, c *cache.Cache) {
	ctrl := controller.NewReportController(db, c)

	reports := api.Group("/reports", auth.AuthMiddleware(), auth.RequireRoles(constants.ReportRoles...))
	reports.Get("/all-data", ctrl.GetAllData)
	reports.Get("/trend", ctrl.GetTrend)
	reports.Get("/comparison", ctrl.GetComparison)
	reports.Post("/export", ctrl.ExportSchoolReport)
}
