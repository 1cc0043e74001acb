package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madaris_backend/internals/features/reports/cache"
	"madaris_backend/internals/features/schools/controller"
)

func SchoolRoutes(api fiber.Router, db *gorm.DB, c *cache.Cache) {
	ctrl := controller.NewSchoolController(db, c)

	schools := api.Group("/schools")
	schools.Get("/", ctrl.GetSchools)
	schools.Post("/", ctrl.CreateSchool)
	schools.Post("/batch", ctrl.CreateSchoolsBatch)
	schools.Post("/import", ctrl.ImportSchools)
	schools.Put("/:id", ctrl.UpdateSchool)
	schools.Delete("/:id", ctrl.DeleteSchool)
}
