package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"dayflow_backend/internals/features/leaves/leave/dto"
	"dayflow_backend/internals/features/leaves/leave/service"
	helper "dayflow_backend/internals/helpers"
	"dayflow_backend/internals/helpers/apperr"
	authMw "dayflow_backend/internals/middlewares/auth"
)

var ErrBadLeaveID = apperr.Validation("INVALID_ID", "Invalid leave id")

type LeaveController struct {
	svc *service.LeaveService
}

func NewLeaveController(svc *service.LeaveService) *LeaveController {
	return &LeaveController{svc: svc}
}

func leaveID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, ErrBadLeaveID
	}
	return id, nil
}

// POST /api/leaves
func (lc *LeaveController) Submit(c *fiber.Ctx) error {
	acting, err := authMw.MustAccount(c)
	if err != nil {
		return err
	}
	var req dto.SubmitLeaveRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	in, err := req.ToInput()
	if err != nil {
		return err
	}
	l, err := lc.svc.Submit(c.UserContext(), acting, in)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "Leave request submitted successfully", fiber.Map{"leave": dto.ToResponse(l)})
}

// GET /api/leaves/my-leaves
func (lc *LeaveController) MyLeaves(c *fiber.Ctx) error {
	acting, err := authMw.MustAccount(c)
	if err != nil {
		return err
	}
	list, bal, err := lc.svc.MyLeaves(c.UserContext(), acting)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", fiber.Map{
		"count":      len(list),
		"leaves":     dto.ToResponses(list),
		"statistics": bal,
	})
}

// GET /api/leaves/all?status=
func (lc *LeaveController) All(c *fiber.Ctx) error {
	list, err := lc.svc.All(c.UserContext(), c.Query("status"))
	if err != nil {
		return err
	}
	return helper.JsonList(c, "", "leaves", dto.ToResponses(list), len(list))
}

// PUT /api/leaves/:id/approve
func (lc *LeaveController) Approve(c *fiber.Ctx) error {
	acting, err := authMw.MustAccount(c)
	if err != nil {
		return err
	}
	id, err := leaveID(c)
	if err != nil {
		return err
	}
	l, err := lc.svc.Approve(c.UserContext(), id, acting)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Leave request approved", fiber.Map{"leave": dto.ToResponse(l)})
}

// PUT /api/leaves/:id/reject
func (lc *LeaveController) Reject(c *fiber.Ctx) error {
	acting, err := authMw.MustAccount(c)
	if err != nil {
		return err
	}
	id, err := leaveID(c)
	if err != nil {
		return err
	}
	var req dto.RejectLeaveRequest
	if len(c.Body()) > 0 {
		if err := helper.ParseBody(c, &req); err != nil {
			return err
		}
	}
	l, err := lc.svc.Reject(c.UserContext(), id, acting, req.Text())
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Leave request rejected", fiber.Map{"leave": dto.ToResponse(l)})
}

// DELETE /api/leaves/:id
func (lc *LeaveController) Delete(c *fiber.Ctx) error {
	acting, err := authMw.MustAccount(c)
	if err != nil {
		return err
	}
	id, err := leaveID(c)
	if err != nil {
		return err
	}
	if err := lc.svc.Remove(c.UserContext(), id, acting); err != nil {
		return err
	}
	return helper.JsonOK(c, "Leave request deleted", nil)
}
