package route

import (
	"github.com/gofiber/fiber/v2"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/attendance/attendance/controller"
	authMw "dayflow_backend/internals/middlewares/auth"
)

func AttendanceRoutes(api fiber.Router, ac *controller.AttendanceController) {
	g := api.Group("/attendance")

	g.Post("/checkin", ac.CheckIn)
	g.Post("/checkout", ac.CheckOut)
	g.Get("/today", ac.Today)
	g.Get("/history", ac.History)
	g.Get("/all", authMw.OnlyRoles(constants.RoleErrorAdminOrHR("all attendance"), constants.AdminOrHR...), ac.All)
}
