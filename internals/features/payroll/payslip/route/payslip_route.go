package route

import (
	"github.com/gofiber/fiber/v2"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/payroll/payslip/controller"
	authMw "dayflow_backend/internals/middlewares/auth"
)

func PayrollRoutes(api fiber.Router, pc *controller.PayslipController) {
	g := api.Group("/payroll")
	g.Get("/:id/payslip", authMw.OnlySelfOrRoles("id", constants.RoleErrorSelf("payslip"), constants.AdminOrHR...), pc.Payslip)
}
