package controller

import (
	"fixzit-be/internal/dto"
	"fixzit-be/internal/pkg/serverutils"
	"fixzit-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPropertyController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Nearby(ctx *fiber.Ctx) error
}

type propertyController struct {
	service service.IPropertyService
}

func NewPropertyController(service service.IPropertyService) IPropertyController {
	return &propertyController{service: service}
}

func (c *propertyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/property/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Post("nearby", c.Nearby)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
}

func (c *propertyController) Create(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)

	var req dto.CreatePropertyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), orgId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create property", res))
}

func (c *propertyController) Show(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid property id")
	}

	res, err := c.service.Show(ctx.Context(), orgId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "property not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show property", res))
}

func (c *propertyController) GetAll(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)

	res, err := c.service.GetAll(ctx.Context(), orgId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all properties", res))
}

func (c *propertyController) Delete(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid property id")
	}

	if err := c.service.Delete(ctx.Context(), orgId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete property", nil))
}

func (c *propertyController) Nearby(ctx *fiber.Ctx) error {
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

	return ctx.JSON(serverutils.SuccessResponse("Success find nearby properties", res))
}
