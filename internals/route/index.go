package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madaris_backend/internals/features/reports/cache"
	reportRoute "madaris_backend/internals/features/reports/route"
	resultRoute "madaris_backend/internals/features/results/route"
	schoolRoute "madaris_backend/internals/features/schools/route"
	userRoute "madaris_backend/internals/features/users/route"
)

// SetupRoutes mounts every feature under /api.
func SetupRoutes(app *fiber.App, db *gorm.DB, c *cache.Cache) {
	api := app.Group("/api")

	userRoute.UserRoutes(api, db)
	schoolRoute.SchoolRoutes(api, db, c)
	resultRoute.ResultRoutes(api, db, c)
	reportRoute.ReportRoutes(api, db, c)
}
