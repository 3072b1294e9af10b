package controller

import (
	"fixzit-be/internal/dto"
	"fixzit-be/internal/pkg/serverutils"
	"fixzit-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IWorkOrderController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Similar(ctx *fiber.Ctx) error
	Nearby(ctx *fiber.Ctx) error
}

type workOrderController struct {
	service service.IWorkOrderService
}

func NewWorkOrderController(service service.IWorkOrderService) IWorkOrderController {
	return &workOrderController{service: service}
}

func (c *workOrderController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/work-order/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Post("search", c.Search)
	h.Post("similar", c.Similar)
	h.Post("nearby", c.Nearby)
	h.Get(":id", c.Show)
	h.Put(":id/status", c.UpdateStatus)
	h.Delete(":id", c.Delete)
}

func (c *workOrderController) Create(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)

	var req dto.CreateWorkOrderRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), orgId, &req)
	if err != nil {
		if err == service.ErrPropertyNotFound {
			return fiber.NewError(fiber.StatusNotFound, "property not found")
		}
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create work order", res))
}

func (c *workOrderController) Show(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid work order id")
	}

	res, err := c.service.Show(ctx.Context(), orgId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "work order not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show work order", res))
}

func (c *workOrderController) List(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)

	var req dto.ListWorkOrdersRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.List(ctx.Context(), orgId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all work orders", res))
}

func (c *workOrderController) UpdateStatus(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid work order id")
	}

	var req dto.UpdateWorkOrderStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateStatus(ctx.Context(), orgId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "work order not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update work order status", res))
}

func (c *workOrderController) Delete(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid work order id")
	}

	if err := c.service.Delete(ctx.Context(), orgId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete work order", nil))
}

func (c *workOrderController) Search(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)

	var req dto.SearchWorkOrdersRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Search(ctx.Context(), orgId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search work orders", res))
}

func (c *workOrderController) Similar(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)

	var req dto.SimilarWorkOrdersRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Similar(ctx.Context(), orgId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success find similar work orders", res))
}

func (c *workOrderController) Nearby(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)

	var req dto.NearbyWorkOrdersRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Nearby(ctx.Context(), orgId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success find nearby work orders", res))
}

// orgIdFromLocals reads the tenant id placed by JwtMiddleware. The
// middleware already rejected tokens without it.
func orgIdFromLocals(ctx *fiber.Ctx) uuid.UUID {
	orgIdStr, _ := ctx.Locals("org_id").(string)
	orgId, _ := uuid.Parse(orgIdStr)
	return orgId
}
