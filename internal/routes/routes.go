package routes

import (
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"gearguard/internal/controllers"
	"gearguard/internal/repositories"
	"gearguard/internal/services"
	"gearguard/pkg/config"
	"gearguard/pkg/middleware"
	"gearguard/pkg/service"
)

// InitRouter wires repositories, services and controllers, and mounts
// everything under /api. Only login and register are public; the rest
// sits behind the JWT middleware.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)
	txManager := repositories.NewTxManager(dbConn)

	// Repositories.
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	userRepo := repositories.NewUserRepository(dbConn)
	departmentRepo := repositories.NewDepartmentRepository(dbConn)
	teamRepo := repositories.NewMaintenanceTeamRepository(dbConn)
	technicianRepo := repositories.NewTechnicianRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	requestRepo := repositories.NewMaintenanceRequestRepository(dbConn)
	timeLogRepo := repositories.NewTimeLogRepository(dbConn)
	auditRepo := repositories.NewRequestAuditLogRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)

	// Services.
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, cfg.Auth, logger)
	userService := services.NewUserService(userRepo)
	departmentService := services.NewDepartmentService(departmentRepo)
	teamService := services.NewMaintenanceTeamService(teamRepo)
	technicianService := services.NewTechnicianService(technicianRepo, userRepo, teamRepo)
	equipmentService := services.NewEquipmentService(equipmentRepo, departmentRepo, teamRepo)
	requestService := services.NewMaintenanceRequestService(requestRepo, equipmentRepo, technicianRepo, auditRepo, timeLogRepo, txManager, logger)
	timeLogService := services.NewTimeLogService(timeLogRepo, requestRepo, technicianRepo)
	reportService := services.NewReportService(reportRepo, cacheRepo, cfg.ReportCacheTTL, logger)

	// Controllers.
	authCtrl := controllers.NewAuthController(authService, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	departmentCtrl := controllers.NewDepartmentController(departmentService, logger)
	teamCtrl := controllers.NewMaintenanceTeamController(teamService, logger)
	technicianCtrl := controllers.NewTechnicianController(technicianService, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)
	requestCtrl := controllers.NewMaintenanceRequestController(requestService, logger)
	timeLogCtrl := controllers.NewTimeLogController(timeLogService, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	secure := api.Group("", authMW.Auth)

	runAuthRouter(api, secure, authCtrl)
	runUserRouter(secure, userCtrl)
	runDepartmentRouter(secure, departmentCtrl)
	runMaintenanceTeamRouter(secure, teamCtrl)
	runTechnicianRouter(secure, technicianCtrl)
	runEquipmentRouter(secure, equipmentCtrl)
	runMaintenanceRequestRouter(secure, requestCtrl)
	runTimeLogRouter(secure, timeLogCtrl)
	runReportRouter(secure, reportCtrl)

	logger.Info("router initialized")
}
