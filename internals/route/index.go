// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"dayflow_backend/internals/configs"
	"dayflow_backend/internals/helpers/dbtime"
	authMw "dayflow_backend/internals/middlewares/auth"

	attendanceController "dayflow_backend/internals/features/attendance/attendance/controller"
	attendanceRepo "dayflow_backend/internals/features/attendance/attendance/repository"
	attendanceRoute "dayflow_backend/internals/features/attendance/attendance/route"
	attendanceService "dayflow_backend/internals/features/attendance/attendance/service"

	leaveController "dayflow_backend/internals/features/leaves/leave/controller"
	leaveRepo "dayflow_backend/internals/features/leaves/leave/repository"
	leaveRoute "dayflow_backend/internals/features/leaves/leave/route"
	leaveService "dayflow_backend/internals/features/leaves/leave/service"

	payslipController "dayflow_backend/internals/features/payroll/payslip/controller"
	payslipRoute "dayflow_backend/internals/features/payroll/payslip/route"
	payslipService "dayflow_backend/internals/features/payroll/payslip/service"

	authController "dayflow_backend/internals/features/users/auth/controller"
	authRoute "dayflow_backend/internals/features/users/auth/route"
	authService "dayflow_backend/internals/features/users/auth/service"

	userController "dayflow_backend/internals/features/users/user/controller"
	userRepo "dayflow_backend/internals/features/users/user/repository"
	userRoute "dayflow_backend/internals/features/users/user/route"
	userService "dayflow_backend/internals/features/users/user/service"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	startTime = time.Now()
	clock := dbtime.SystemClock{}

	// ===================== WIRING =====================
	users := userRepo.NewUserRepository(db)
	hasher := authService.NewPasswordHasher(cfg.BcryptCost)
	tokens := authService.NewTokenService(cfg.JWTSecret, cfg.JWTExpire)

	authSvc := authService.NewAuthService(users, hasher, tokens, clock, cfg.Location)
	employeeSvc := userService.NewEmployeeService(users, hasher, clock, cfg.Location)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo.NewAttendanceRepository(db), clock, cfg.Location)
	leaveSvc := leaveService.NewLeaveService(leaveRepo.NewLeaveRepository(db), clock)
	payslipSvc := payslipService.NewPayslipService(employeeSvc, attendanceSvc)

	authCtl := authController.NewAuthController(authSvc)

	api := app.Group("/api")

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up public routes...")
	BaseRoutes(api, db)
	authRoute.AuthPublicRoutes(api, authCtl)

	// ===================== PROTECTED =====================
	log.Println("[INFO] Setting up protected routes...")
	protected := Protect(api, authMw.AuthMiddleware(tokens, authSvc))

	authRoute.AuthProtectedRoutes(protected, authCtl)
	userRoute.EmployeeRoutes(protected, userController.NewEmployeeController(employeeSvc))
	attendanceRoute.AttendanceRoutes(protected, attendanceController.NewAttendanceController(attendanceSvc))
	leaveRoute.LeaveRoutes(protected, leaveController.NewLeaveController(leaveSvc))
	payslipRoute.PayrollRoutes(protected, payslipController.NewPayslipController(payslipSvc))

	log.Println("[INFO] Routes ready")
}

// protectedPrefixes are the /api subtrees that require a bearer token.
// Paths outside them fall through to the 404 handler.
var protectedPrefixes = []string{
	"/auth/me",
	"/auth/change-password",
	"/employees",
	"/attendance",
	"/leaves",
	"/payroll",
}

// Protect mounts mw on every protected prefix of api and returns api for
// registering the routes behind it.
func Protect(api fiber.Router, mw fiber.Handler) fiber.Router {
	for _, p := range protectedPrefixes {
		api.Use(p, mw)
	}
	return api
}
