package controller

import (
	"strconv"

	"fixzit-be/internal/pkg/logger"
	"fixzit-be/internal/pkg/serverutils"
	"fixzit-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IReportController interface {
	RegisterRoutes(r fiber.Router)
	OrgDashboard(ctx *fiber.Ctx) error
	WorkOrdersByStatus(ctx *fiber.Ctx) error
	RevenueByStatus(ctx *fiber.Ctx) error
	PlatformRevenue(ctx *fiber.Ctx) error
	AuditLogs(ctx *fiber.Ctx) error
}

type reportController struct {
	service     service.IReportService
	auditLogger logger.ILogger
}

func NewReportController(service service.IReportService, auditLogger logger.ILogger) IReportController {
	return &reportController{
		service:     service,
		auditLogger: auditLogger,
	}
}

func (c *reportController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/report/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("dashboard", c.OrgDashboard)
	h.Get("work-orders/status", c.WorkOrdersByStatus)
	h.Get("revenue/status", c.RevenueByStatus)

	admin := h.Group("/admin")
	admin.Use(serverutils.AdminOnly)
	admin.Get("revenue", c.PlatformRevenue)
	admin.Get("audit-logs", c.AuditLogs)
}

func (c *reportController) OrgDashboard(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)

	res, err := c.service.OrgDashboard(ctx.Context(), orgId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard", res))
}

func (c *reportController) WorkOrdersByStatus(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)

	res, err := c.service.WorkOrdersByStatus(ctx.Context(), orgId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get work order status report", res))
}

func (c *reportController) RevenueByStatus(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)

	res, err := c.service.RevenueByStatus(ctx.Context(), orgId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get revenue report", res))
}

// PlatformRevenue is the only endpoint that reads across tenants. The
// caller must be a platform admin and must state a reason; both end up on
// the audit stream.
func (c *reportController) PlatformRevenue(ctx *fiber.Ctx) error {
	actor, _ := ctx.Locals("user_id").(string)
	reason := ctx.Query("reason")
	if reason == "" {
		return fiber.NewError(fiber.StatusBadRequest, "a reason is required for cross-tenant reports")
	}

	res, err := c.service.PlatformRevenue(ctx.Context(), actor, reason)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get platform revenue", res))
}

func (c *reportController) AuditLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit, _ := strconv.Atoi(ctx.Query("limit", "50"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	logs, err := c.auditLogger.GetLogs(level, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get audit logs", logs))
}
