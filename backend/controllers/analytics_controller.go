package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"habitflow/backend/middleware"
	"habitflow/backend/services"
	"habitflow/backend/utils"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
	Log       *log.Logger
}

func NewAnalyticsController(analytics *services.AnalyticsService, logger *log.Logger) *AnalyticsController {
	return &AnalyticsController{Analytics: analytics, Log: logger}
}

// Overview godoc
// @Summary Dashboard snapshot
// @Description Habit count, active challenges, total XP and the cross-habit streak
// @Tags analytics
// @Produce json
// @Success 200 {object} services.Overview
// @Failure 500 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /analytics/overview [get]
func (ac *AnalyticsController) Overview(c *fiber.Ctx) error {
	overview, err := ac.Analytics.Overview(middleware.UserID(c))
	if err != nil {
		return utils.FromError(c, ac.Log, err)
	}
	return c.JSON(overview)
}

func (ac *AnalyticsController) HabitsDaily(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))

	buckets, err := ac.Analytics.HabitsDaily(middleware.UserID(c), days)
	if err != nil {
		return utils.FromError(c, ac.Log, err)
	}
	return c.JSON(fiber.Map{"days": buckets})
}

func (ac *AnalyticsController) XPWeekly(c *fiber.Ctx) error {
	weeks, _ := strconv.Atoi(c.Query("weeks", "8"))

	buckets, err := ac.Analytics.XPWeekly(middleware.UserID(c), weeks)
	if err != nil {
		return utils.FromError(c, ac.Log, err)
	}
	return c.JSON(fiber.Map{"weeks": buckets})
}

func (ac *AnalyticsController) TopHabits(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "5"))

	top, err := ac.Analytics.TopHabits(middleware.UserID(c), limit)
	if err != nil {
		return utils.FromError(c, ac.Log, err)
	}
	return c.JSON(fiber.Map{"top": top})
}
