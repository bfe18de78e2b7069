package controller

import (
	"github.com/gofiber/fiber/v2"

	"dayflow_backend/internals/features/users/auth/dto"
	"dayflow_backend/internals/features/users/auth/service"
	userDto "dayflow_backend/internals/features/users/user/dto"
	helper "dayflow_backend/internals/helpers"
	authMw "dayflow_backend/internals/middlewares/auth"
)

type AuthController struct {
	svc *service.AuthService
}

func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

// POST /api/auth/signup
func (ac *AuthController) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	u, token, err := ac.svc.Register(c.UserContext(), req.ToInput())
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "User registered successfully", fiber.Map{
		"token": token,
		"user":  dto.ToSessionUser(u),
	})
}

// POST /api/auth/signin
func (ac *AuthController) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	u, token, err := ac.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Login successful", fiber.Map{
		"token": token,
		"user":  dto.ToSessionUser(u),
	})
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	u, err := authMw.MustAccount(c)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "", fiber.Map{"user": userDto.ToProfile(u, true)})
}

// PUT /api/auth/change-password
func (ac *AuthController) ChangePassword(c *fiber.Ctx) error {
	u, err := authMw.MustAccount(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := helper.ParseBody(c, &req); err != nil {
		return err
	}
	if err := ac.svc.ChangePassword(c.UserContext(), u, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return helper.JsonOK(c, "Password changed successfully", nil)
}
