package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dayflow_backend/internals/constants"
	"dayflow_backend/internals/features/users/user/dto"
	"dayflow_backend/internals/features/users/user/service"
	helper "dayflow_backend/internals/helpers"
	"dayflow_backend/internals/helpers/apperr"
	authMw "dayflow_backend/internals/middlewares/auth"
)

var ErrBadEmployeeID = apperr.Validation("INVALID_ID", "Invalid employee id")

type EmployeeController struct {
	svc *service.EmployeeService
}

func NewEmployeeController(svc *service.EmployeeService) *EmployeeController {
	return &EmployeeController{svc: svc}
}

func ParseID(c *fiber.Ctx, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(param))
	if err != nil {
		return uuid.Nil, ErrBadEmployeeID
	}
	return id, nil
}

// GET /api/employees
func (ec *EmployeeController) List(c *fiber.Ctx) error {
	list, err := ec.svc.List(c.UserContext())
	if err != nil {
		return err
	}
	return helper.JsonList(c, "", "employees", dto.ToSummaries(list), len(list))
}

// GET /api/employees/:id
func (ec *EmployeeController) Get(c *fiber.Ctx) error {
	acting, err := authMw.MustAccount(c)
	if err != nil {
		return err
	}
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}
	u, err := ec.svc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	withSalary := acting.ID == u.ID || acting.HasRole(constants.AdminOrHR...)
	return helper.JsonOK(c, "", fiber.Map{"employee": dto.ToProfile(u, withSalary)})
}

// POST /api/employees
func (ec *EmployeeController) Create(c *fiber.Ctx) error {
	var req dto.CreateEmployeeRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	u, temp, err := ec.svc.CreateEmployee(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Employee created successfully. Temporary password generated.", fiber.Map{
		"employee": fiber.Map{
			"id":                u.ID,
			"name":              u.Name,
			"email":             u.Email,
			"role":              u.Role,
			"employeeId":        u.EmployeeCode(),
			"temporaryPassword": temp,
		},
	})
}

// PUT /api/employees/:id
func (ec *EmployeeController) Update(c *fiber.Ctx) error {
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateEmployeeRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	patch, err := req.ToPatch()
	if err != nil {
		return err
	}
	u, err := ec.svc.UpdateProfile(c.UserContext(), id, patch)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Employee updated successfully", fiber.Map{"employee": dto.ToProfile(u, true)})
}

// PUT /api/employees/:id/salary
func (ec *EmployeeController) UpdateSalary(c *fiber.Ctx) error {
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateSalaryRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	u, err := ec.svc.UpdateSalary(c.UserContext(), id, req.ToModel())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Salary structure updated", fiber.Map{"employee": dto.ToProfile(u, true)})
}

// DELETE /api/employees/:id
func (ec *EmployeeController) Deactivate(c *fiber.Ctx) error {
	id, err := ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := ec.svc.Deactivate(c.UserContext(), id); err != nil {
		return err
	}
	return helper.JsonOK(c, "Employee deactivated successfully", nil)
}
