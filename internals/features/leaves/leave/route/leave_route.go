package route

import (
	"github.com/gofiber/fiber/v2"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/leaves/leave/controller"
	authMw "dayflow_backend/internals/middlewares/auth"
)

func LeaveRoutes(api fiber.Router, lc *controller.LeaveController) {
	g := api.Group("/leaves")
	adminOrHR := authMw.OnlyRoles(constants.RoleErrorAdminOrHR("leave approvals"), constants.AdminOrHR...)

	g.Post("/", lc.Submit)
	g.Get("/my-leaves", lc.MyLeaves)
	g.Get("/all", adminOrHR, lc.All)
	g.Put("/:id/approve", adminOrHR, lc.Approve)
	g.Put("/:id/reject", adminOrHR, lc.Reject)
	g.Delete("/:id", lc.Delete)
}
