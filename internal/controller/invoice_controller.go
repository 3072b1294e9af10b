package controller

import (
	"fixzit-be/internal/dto"
	"fixzit-be/internal/pkg/serverutils"
	"fixzit-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInvoiceController interface {
	RegisterRoutes(r fiber.Router)
	Issue(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	MarkPaid(ctx *fiber.Ctx) error
}

type invoiceController struct {
	service service.IInvoiceService
}

func NewInvoiceController(service service.IInvoiceService) IInvoiceController {
	return &invoiceController{service: service}
}

func (c *invoiceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/invoice/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Issue)
	h.Get(":id", c.Show)
	h.Put(":id/pay", c.MarkPaid)
}

func (c *invoiceController) Issue(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)

	var req dto.CreateInvoiceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Issue(ctx.Context(), orgId, &req)
	if err != nil {
		if err == service.ErrWorkOrderNotFound {
			return fiber.NewError(fiber.StatusNotFound, "work order not found")
		}
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success issue invoice", res))
}

func (c *invoiceController) Show(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	res, err := c.service.Show(ctx.Context(), orgId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show invoice", res))
}

func (c *invoiceController) GetAll(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)

	res, err := c.service.GetAll(ctx.Context(), orgId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all invoices", res))
}

func (c *invoiceController) MarkPaid(ctx *fiber.Ctx) error {
	orgId := orgIdFromLocals(ctx)
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	res, err := c.service.MarkPaid(ctx.Context(), orgId, id)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "invoice not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success mark invoice paid", res))
}
