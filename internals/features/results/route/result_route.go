package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madaris_backend/internals/features/reports/cache"
	"madaris_backend/internals/features/results/controller"
	"madaris_backend/internals/features/results/testtype"
)

// ResultRoutes mounts the same CRUD surface once per registered test type:
// /api/timssResults, /api/pisaResults and so on.
func ResultRoutes(api fiber.Router, db *gorm.DB, c *cache.Cache) {
	for _, cfg := range testtype.Registry {
		ctrl := controller.NewResultController(db, c, cfg)

		group := api.Group("/" + cfg.Key)
		group.Get("/", ctrl.GetResults)
		group.Post("/", ctrl.CreateResult)
		group.Post("/batch", ctrl.CreateResultsBatch)
		group.Post("/import", ctrl.ImportResults)
		group.Put("/:id", ctrl.UpdateResult)
		group.Delete("/:id", ctrl.DeleteResult)
	}
}
