package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"habitflow/backend/middleware"
	"habitflow/backend/services"
	"habitflow/backend/utils"
)

// historyWindowDays is the span of the completion calendar shown per habit.
const historyWindowDays = 7

type HabitController struct {
	Habits *services.HabitService
	Log    *log.Logger
}

func NewHabitController(habits *services.HabitService, logger *log.Logger) *HabitController {
	return &HabitController{Habits: habits, Log: logger}
}

func (hc *HabitController) Create(c *fiber.Ctx) error {
	var input services.CreateHabitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	habit, err := hc.Habits.Create(middleware.UserID(c), input)
	if err != nil {
		return utils.FromError(c, hc.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (hc *HabitController) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "6"))
	tag := c.Query("tag")

	habits, total, err := hc.Habits.List(middleware.UserID(c), tag, page, limit)
	if err != nil {
		return utils.FromError(c, hc.Log, err)
	}
	return c.JSON(fiber.Map{
		"habits":     habits,
		"totalCount": total,
	})
}

func (hc *HabitController) Get(c *fiber.Ctx) error {
	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	habit, currentStreak, err := hc.Habits.Get(middleware.UserID(c), uint(habitID))
	if err != nil {
		return utils.FromError(c, hc.Log, err)
	}
	return c.JSON(fiber.Map{
		"habit":         habit,
		"currentStreak": currentStreak,
	})
}

func (hc *HabitController) Update(c *fiber.Ctx) error {
	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	var input services.UpdateHabitInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	habit, err := hc.Habits.Update(middleware.UserID(c), uint(habitID), input)
	if err != nil {
		return utils.FromError(c, hc.Log, err)
	}
	return c.JSON(habit)
}

func (hc *HabitController) Delete(c *fiber.Ctx) error {
	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	if err := hc.Habits.Delete(middleware.UserID(c), uint(habitID)); err != nil {
		return utils.FromError(c, hc.Log, err)
	}
	return c.JSON(fiber.Map{"message": "Deleted"})
}

// Track godoc
// @Summary Track a habit for today
// @Description Records today's completion; at most one per day
// @Tags habits
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /habits/{id}/track [post]
func (hc *HabitController) Track(c *fiber.Ctx) error {
	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	entry, err := hc.Habits.Track(middleware.UserID(c), uint(habitID))
	if err != nil {
		return utils.FromError(c, hc.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Tracked",
		"log":     entry,
	})
}

// History godoc
// @Summary Habit completion calendar
// @Description Returns the last 7 days, completed or not, oldest first
// @Tags habits
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /habits/{id}/history [get]
func (hc *HabitController) History(c *fiber.Ctx) error {
	habitID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Habit not found")
	}

	history, err := hc.Habits.History(middleware.UserID(c), uint(habitID), historyWindowDays)
	if err != nil {
		return utils.FromError(c, hc.Log, err)
	}
	return c.JSON(fiber.Map{"history": history})
}
