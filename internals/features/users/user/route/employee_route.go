// file: internals/features/users/user/route/employee_route.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/users/user/controller"
	authMw "dayflow_backend/internals/middlewares/auth"
)

// EmployeeRoutes mounts /employees on an already authenticated router.
func EmployeeRoutes(api fiber.Router, ec *controller.EmployeeController) {
	g := api.Group("/employees")

	adminOrHR := authMw.OnlyRoles(constants.RoleErrorAdminOrHR("employee management"), constants.AdminOrHR...)
	selfOrAdmin := authMw.OnlySelfOrRoles("id", constants.RoleErrorSelf("profile"), constants.AdminOrHR...)

	g.Get("/", ec.List)
	g.Post("/", adminOrHR, ec.Create)
	g.Get("/:id", ec.Get)
	g.Put("/:id", selfOrAdmin, ec.Update)
	g.Put("/:id/salary", adminOrHR, ec.UpdateSalary)
	g.Delete("/:id", adminOrHR, ec.Deactivate)
}
