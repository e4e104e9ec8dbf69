package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"staffsync/internal/caching"
	"staffsync/internal/config"
	"staffsync/internal/handlers"
	"staffsync/internal/jobs"
	"staffsync/internal/jobs/background"
	appmiddleware "staffsync/internal/middleware"
	"staffsync/internal/models"
	"staffsync/internal/repositories"
	"staffsync/internal/services"
	"staffsync/pkg/database"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	jobsCfg, err := config.LoadJobsConfig(os.Getenv("JOBS_CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load jobs configuration: %v", err)
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	storage, err := services.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storage.EnsureBucket(context.Background()); err != nil {
		log.Printf("WARN: could not ensure storage bucket: %v", err)
	}

	// Repositories
	permissionRepo := repositories.NewPermissionRepository(pool)
	levelRepo := repositories.NewAuthorizationLevelRepository(pool)
	roleRepo := repositories.NewRoleRepository(pool)
	rolePermissionRepo := repositories.NewRolePermissionRepository(pool)
	employeePermissionRepo := repositories.NewEmployeePermissionRepository(pool)
	employeeRepo := repositories.NewEmployeeRepository(pool)
	auditRepo := repositories.NewAuditEntryRepository(pool)
	leaveTypeRepo := repositories.NewLeaveTypeRepository(pool)
	leaveRequestRepo := repositories.NewLeaveRequestRepository(pool)
	leaveBalanceRepo := repositories.NewLeaveBalanceRepository(pool)
	attendanceRepo := repositories.NewAttendanceRepository(pool)
	breakTypeRepo := repositories.NewBreakTypeRepository(pool)
	timesheetRepo := repositories.NewTimesheetRepository(pool)
	candidateRepo := repositories.NewCandidateRepository(pool)

	// Services
	auditRecorder := services.NewAuditRecorder()
	codeSvc := services.NewEmployeeCodeService(cfg.EmployeeCodePrefix)
	authzSvc := services.NewAuthzService(employeePermissionRepo)
	permissionSvc := services.NewPermissionService(pool, auditRecorder)
	authSvc := services.NewAuthService(employeeRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	employeeSvc := services.NewEmployeeService(pool, employeeRepo, codeSvc, auditRecorder, cacheSvc)
	leaveSvc := services.NewLeaveService(pool, leaveRequestRepo, leaveBalanceRepo, leaveTypeRepo, auditRecorder)
	attendanceSvc := services.NewAttendanceService(attendanceRepo)
	timesheetSvc := services.NewTimesheetService(pool, timesheetRepo, breakTypeRepo, auditRecorder)
	recruitmentSvc := services.NewRecruitmentService(pool, candidateRepo, storage, auditRecorder)
	metricsSvc := services.NewMetricsService(employeeRepo, leaveRequestRepo, attendanceRepo, candidateRepo,
		cacheSvc, time.Duration(jobsCfg.DashboardTTLSeconds)*time.Second)

	seeder := services.NewSeeder(permissionRepo, levelRepo, roleRepo, rolePermissionRepo,
		leaveTypeRepo, breakTypeRepo, employeeRepo, employeeSvc)
	if err := seeder.Seed(context.Background(), cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("Failed to seed reference data: %v", err)
	}

	// Background jobs
	accrualJob := jobs.NewLeaveAccrualService(employeeRepo, leaveTypeRepo, leaveBalanceRepo)
	reminderJob := jobs.NewTimesheetReminderService(timesheetRepo)
	scheduler, err := background.NewJobScheduler(accrualJob, reminderJob, jobsCfg)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop job scheduler: %v", err)
		}
	}()

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authSvc)
	employeeHandlers := handlers.NewEmployeeHandlers(employeeSvc, authzSvc, storage)
	permissionHandlers := handlers.NewPermissionHandlers(permissionSvc, permissionRepo, levelRepo, roleRepo, rolePermissionRepo, employeePermissionRepo)
	leaveHandlers := handlers.NewLeaveHandlers(leaveSvc)
	attendanceHandlers := handlers.NewAttendanceHandlers(attendanceSvc)
	timesheetHandlers := handlers.NewTimesheetHandlers(timesheetSvc)
	recruitmentHandlers := handlers.NewRecruitmentHandlers(recruitmentSvc)
	auditHandlers := handlers.NewAuditHandlers(auditRepo)
	dashboardHandlers := handlers.NewDashboardHandlers(metricsSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	authzMw := appmiddleware.NewAuthzMiddleware(authzSvc)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())

	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadyCheck)
	e.GET("/health/detailed", healthHandlers.DetailedCheck)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandlers.Login)

	protected := v1.Group("")
	protected.Use(appmiddleware.JWTMiddleware(cfg.JWTSecret))

	protected.GET("/me/permissions", employeeHandlers.GetMyGrants)

	employees := protected.Group("/employees", authzMw.RequirePermission(models.PermEmployees))
	employees.POST("", employeeHandlers.CreateEmployee)
	employees.GET("", employeeHandlers.ListEmployees)
	employees.GET("/:id", employeeHandlers.GetEmployee)
	employees.PUT("/:id", employeeHandlers.UpdateEmployee)
	employees.PUT("/:id/deactivate", employeeHandlers.DeactivateEmployee)
	employees.DELETE("/:id", employeeHandlers.DeleteEmployee)
	employees.POST("/:id/photo", employeeHandlers.UploadPhoto)
	employees.GET("/:id/photo", employeeHandlers.GetPhotoURL)

	permissions := protected.Group("/permissions", authzMw.RequirePermission(models.PermPermissions))
	permissions.GET("", permissionHandlers.ListPermissions)
	permissions.GET("/levels", permissionHandlers.ListLevels)
	permissions.GET("/employees/:id", permissionHandlers.ListEmployeeGrants)
	permissions.POST("/employees/:id", permissionHandlers.GrantPermission)
	permissions.DELETE("/employees/:id/:permissionID", permissionHandlers.RevokePermission)

	roles := protected.Group("/roles", authzMw.RequirePermission(models.PermPermissions))
	roles.GET("", permissionHandlers.ListRoles)
	roles.POST("", permissionHandlers.CreateRole)
	roles.GET("/:id/permissions", permissionHandlers.ListRoleTemplate)
	roles.POST("/:id/permissions", permissionHandlers.SetRoleTemplateEntry)
	roles.DELETE("/:id/permissions/:permissionID", permissionHandlers.DeleteRoleTemplateEntry)

	leave := protected.Group("/leave", authzMw.RequirePermission(models.PermLeave))
	leave.POST("", leaveHandlers.SubmitLeave)
	leave.GET("/types", leaveHandlers.ListLeaveTypes)
	leave.GET("/pending", leaveHandlers.ListPendingLeave)
	leave.GET("/:id", leaveHandlers.GetLeave)
	leave.PUT("/:id/review", leaveHandlers.ReviewLeave)
	leave.GET("/employees/:id", leaveHandlers.ListEmployeeLeave)
	leave.GET("/employees/:id/balances", leaveHandlers.GetBalances)

	attendance := protected.Group("/attendance", authzMw.RequirePermission(models.PermAttendance))
	attendance.POST("/clock-in", attendanceHandlers.ClockIn)
	attendance.POST("/clock-out", attendanceHandlers.ClockOut)
	attendance.GET("/employees/:id", attendanceHandlers.ListEmployeeAttendance)

	timesheets := protected.Group("/timesheets", authzMw.RequirePermission(models.PermTimeSheet))
	timesheets.POST("", timesheetHandlers.CreateTimesheet)
	timesheets.GET("/break-types", timesheetHandlers.ListBreakTypes)
	timesheets.GET("/:id", timesheetHandlers.GetTimesheet)
	timesheets.PUT("/:id", timesheetHandlers.UpdateTimesheet)
	timesheets.DELETE("/:id", timesheetHandlers.DeleteTimesheet)
	timesheets.GET("/employees/:id", timesheetHandlers.ListEmployeeTimesheets)

	candidates := protected.Group("/candidates", authzMw.RequirePermission(models.PermRecruitment))
	candidates.POST("", recruitmentHandlers.CreateCandidate)
	candidates.GET("", recruitmentHandlers.ListCandidates)
	candidates.GET("/:id", recruitmentHandlers.GetCandidate)
	candidates.PUT("/:id", recruitmentHandlers.UpdateCandidate)
	candidates.PUT("/:id/stage", recruitmentHandlers.MoveCandidateStage)
	candidates.DELETE("/:id", recruitmentHandlers.DeleteCandidate)
	candidates.POST("/:id/resume", recruitmentHandlers.UploadResume)
	candidates.GET("/:id/resume", recruitmentHandlers.GetResumeURL)

	audit := protected.Group("/audit", authzMw.RequirePermission(models.PermAudit))
	audit.GET("", auditHandlers.ListAuditEntries)
	audit.GET("/tables", auditHandlers.ListAuditTables)
	audit.GET("/:id", auditHandlers.GetAuditEntry)

	dashboard := protected.Group("/dashboard", authzMw.RequirePermission(models.PermDashboard))
	dashboard.GET("", dashboardHandlers.GetDashboard)

	// Graceful shutdown
	go func() {
		if err := e.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}
}
