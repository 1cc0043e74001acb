package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"madaris_backend/internals/constants"
	"madaris_backend/internals/features/users/controller"
	"madaris_backend/internals/middlewares/auth"
)

// UserRoutes wires the auth endpoints and the admin-only account management
// surface.
func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewUserController(db)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", ctrl.Login)

	users := api.Group("/users")
	users.Post("/change-password", ctrl.ChangePassword)

	admin := users.Group("/", auth.AuthMiddleware(), auth.RequireRoles(constants.AdminOnly...))
	admin.Get("/", ctrl.GetUsers)
	admin.Post("/", ctrl.CreateUser)
	admin.Put("/:id", ctrl.UpdateUser)
	admin.Delete("/:id", ctrl.DeleteUser)
}
