package controller

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"dayflow_backend/internals/features/attendance/attendance/dto"
	"dayflow_backend/internals/features/attendance/attendance/service"
	helper "dayflow_backend/internals/helpers"
	"dayflow_backend/internals/helpers/apperr"
	"dayflow_backend/internals/helpers/dbtime"
	authMw "dayflow_backend/internals/middlewares/auth"
)

type AttendanceController struct {
	svc *service.AttendanceService
}

func NewAttendanceController(svc *service.AttendanceService) *AttendanceController {
	return &AttendanceController{svc: svc}
}

// POST /api/attendance/checkin
func (ac *AttendanceController) CheckIn(c *fiber.Ctx) error {
	acting, err := authMw.MustAccount(c)
	if err != nil {
		return err
	}
	rec, err := ac.svc.CheckIn(c.UserContext(), acting)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Checked in successfully", fiber.Map{"attendance": dto.ToResponse(rec)})
}

// POST /api/attendance/checkout
func (ac *AttendanceController) CheckOut(c *fiber.Ctx) error {
	acting, err := authMw.MustAccount(c)
	if err != nil {
		return err
	}
	rec, err := ac.svc.CheckOut(c.UserContext(), acting)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Checked out successfully", fiber.Map{"attendance": dto.ToResponse(rec)})
}

// GET /api/attendance/today
func (ac *AttendanceController) Today(c *fiber.Ctx) error {
	acting, err := authMw.MustAccount(c)
	if err != nil {
		return err
	}
	st, err := ac.svc.TodayStatus(c.UserContext(), acting)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", fiber.Map{
		"attendance": dto.ToResponse(st.Record),
		"status":     st.Status,
	})
}

// GET /api/attendance/history?startDate=&endDate=&limit=
func (ac *AttendanceController) History(c *fiber.Ctx) error {
	acting, err := authMw.MustAccount(c)
	if err != nil {
		return err
	}
	fields := map[string]string{}
	q := service.HistoryQuery{
		Start: dateQuery(c, "startDate", fields),
		End:   dateQuery(c, "endDate", fields),
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields["limit"] = "must be a number"
		}
		q.Limit = n
	}
	if len(fields) > 0 {
		return apperr.InvalidFields(fields)
	}

	recs, err := ac.svc.History(c.UserContext(), acting, q)
	if err != nil {
		return err
	}
	return helper.JsonList(c, "", "attendance", dto.ToResponses(recs), len(recs))
}

// GET /api/attendance/all?date=YYYY-MM-DD
func (ac *AttendanceController) All(c *fiber.Ctx) error {
	fields := map[string]string{}
	date := dateQuery(c, "date", fields)
	if len(fields) > 0 {
		return apperr.InvalidFields(fields)
	}
	recs, day, err := ac.svc.AllForDate(c.UserContext(), date)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", fiber.Map{
		"date":       day.Format(dbtime.DateLayout),
		"count":      len(recs),
		"attendance": dto.ToResponses(recs),
	})
}

func dateQuery(c *fiber.Ctx, name string, fields map[string]string) *time.Time {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	d, err := dbtime.ParseDate(raw)
	if err != nil {
		fields[name] = err.Error()
		return nil
	}
	return &d
}
