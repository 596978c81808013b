package controller

import (
	"collabhub-be/internal/pkg/serverutils"
	"collabhub-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAnalyticsController interface {
	RegisterRoutes(r fiber.Router)
	Weekly(ctx *fiber.Ctx) error
}

type analyticsController struct {
	service service.IAnalyticsService
	auth    fiber.Handler
}

func NewAnalyticsController(service service.IAnalyticsService, auth fiber.Handler) IAnalyticsController {
	return &analyticsController{service: service, auth: auth}
}

func (c *analyticsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/analytics")
	h.Use(c.auth)
	h.Get("", c.Weekly)
}

func (c *analyticsController) Weekly(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Weekly(ctx.UserContext(), userId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get analytics", res))
}
