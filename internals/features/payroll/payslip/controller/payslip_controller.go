package controller

import (
	"github.com/gofiber/fiber/v2"

	"dayflow_backend/internals/features/payroll/payslip/dto"
	"dayflow_backend/internals/features/payroll/payslip/service"
	userController "dayflow_backend/internals/features/users/user/controller"
	helper "dayflow_backend/internals/helpers"
)

type PayslipController struct {
	svc *service.PayslipService
}

func NewPayslipController(svc *service.PayslipService) *PayslipController {
	return &PayslipController{svc: svc}
}

// GET /api/payroll/:id/payslip?month=YYYY-MM&workingDays=&bonus=&deductions=
func (pc *PayslipController) Payslip(c *fiber.Ctx) error {
	id, err := userController.ParseID(c, "id")
	if err != nil {
		return err
	}
	req := service.Request{EmployeeID: id}
	if err := dto.ParseQuery(c, &req); err != nil {
		return err
	}
	slip, err := pc.svc.Generate(c.UserContext(), req)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", fiber.Map{"payslip": dto.ToResponse(slip)})
}
