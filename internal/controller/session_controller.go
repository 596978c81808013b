package controller

import (
	"collabhub-be/internal/dto"
	"collabhub-be/internal/entity"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/pkg/serverutils"
	"collabhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Book(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
	auth    fiber.Handler
}

func NewSessionController(service service.ISessionService, auth fiber.Handler) ISessionController {
	return &sessionController{service: service, auth: auth}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Use(c.auth)
	h.Post("", c.Book)
	h.Get("", c.List)
	h.Put("/:id/status", c.UpdateStatus)
}

func (c *sessionController) Book(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.BookSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Book(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.BaseResponse[*dto.SessionResponse]{
		Success: true,
		Code:    fiber.StatusCreated,
		Message: "Session requested",
		Data:    res,
	})
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get sessions", res))
}

func (c *sessionController) UpdateStatus(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	sessionId, err := serverutils.ParamUUID(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateSessionStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.UpdateStatus(ctx.UserContext(), userId, sessionId, entity.SessionStatus(req.NewStatus))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Session updated", res))
}
