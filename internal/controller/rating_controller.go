package controller

import (
	"collabhub-be/internal/dto"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/pkg/serverutils"
	"collabhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRatingController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	ListFor(ctx *fiber.Ctx) error
}

type ratingController struct {
	service service.IRatingService
	auth    fiber.Handler
}

func NewRatingController(service service.IRatingService, auth fiber.Handler) IRatingController {
	return &ratingController{service: service, auth: auth}
}

func (c *ratingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ratings")
	h.Use(c.auth)
	h.Post("", c.Submit)
	h.Get("/:userId", c.ListFor)
}

func (c *ratingController) Submit(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.SubmitRatingRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Submit(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.BaseResponse[*dto.RatingResponse]{
		Success: true,
		Code:    fiber.StatusCreated,
		Message: "Rating submitted",
		Data:    res,
	})
}

func (c *ratingController) ListFor(ctx *fiber.Ctx) error {
	userId, err := serverutils.ParamUUID(ctx, "userId")
	if err != nil {
		return err
	}

	res, err := c.service.ListFor(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get ratings", res))
}
