package controller

import (
	"collabhub-be/internal/dto"
	"collabhub-be/internal/pkg/apperror"
	"collabhub-be/internal/pkg/serverutils"
	"collabhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecommendationController interface {
	RegisterRoutes(r fiber.Router)
	Recommend(ctx *fiber.Ctx) error
	RecommendAI(ctx *fiber.Ctx) error
}

type recommendationController struct {
	service service.IRecommendationService
	auth    fiber.Handler
}

func NewRecommendationController(service service.IRecommendationService, auth fiber.Handler) IRecommendationController {
	return &recommendationController{service: service, auth: auth}
}

func (c *recommendationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/recommendations")
	h.Use(c.auth)
	h.Get("", c.Recommend)
	h.Post("/ai", c.RecommendAI)
}

func (c *recommendationController) Recommend(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Recommend(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get recommendations", res))
}

func (c *recommendationController) RecommendAI(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	var req dto.AIRecommendationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.InvalidArgument("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.RecommendAI(ctx.UserContext(), userId, req.Query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get AI recommendations", res))
}
