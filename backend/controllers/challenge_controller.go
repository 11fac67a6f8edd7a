package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"habitflow/backend/middleware"
	"habitflow/backend/services"
	"habitflow/backend/utils"
)

type ChallengeController struct {
	Challenges *services.ChallengeService
	Log        *log.Logger
}

func NewChallengeController(challenges *services.ChallengeService, logger *log.Logger) *ChallengeController {
	return &ChallengeController{Challenges: challenges, Log: logger}
}

func (cc *ChallengeController) List(c *fiber.Ctx) error {
	challenges, err := cc.Challenges.ListAll()
	if err != nil {
		return utils.FromError(c, cc.Log, err)
	}
	return c.JSON(challenges)
}

func (cc *ChallengeController) Get(c *fiber.Ctx) error {
	challengeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Challenge not found")
	}

	challenge, err := cc.Challenges.Get(uint(challengeID))
	if err != nil {
		return utils.FromError(c, cc.Log, err)
	}
	return c.JSON(fiber.Map{"challenge": challenge})
}

// Create adds a catalog entry. Admin only.
func (cc *ChallengeController) Create(c *fiber.Ctx) error {
	var input services.CreateChallengeInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Cannot parse JSON")
	}

	challenge, err := cc.Challenges.Create(input)
	if err != nil {
		return utils.FromError(c, cc.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(challenge)
}

// Delete removes a catalog entry. Admin only; enrollments are untouched.
func (cc *ChallengeController) Delete(c *fiber.Ctx) error {
	challengeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Challenge not found")
	}

	if err := cc.Challenges.DeleteChallenge(uint(challengeID)); err != nil {
		return utils.FromError(c, cc.Log, err)
	}
	return c.JSON(fiber.Map{"message": "Challenge deleted successfully"})
}

// Start godoc
// @Summary Join a challenge
// @Description Creates an ONGOING enrollment starting today
// @Tags challenges
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /challenges/{id}/start [post]
func (cc *ChallengeController) Start(c *fiber.Ctx) error {
	challengeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Challenge not found")
	}

	uc, err := cc.Challenges.Join(middleware.UserID(c), uint(challengeID))
	if err != nil {
		return utils.FromError(c, cc.Log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":       "Challenge started",
		"userChallenge": uc,
	})
}

// End godoc
// @Summary End an ongoing challenge
// @Description Deletes the enrollment and discards its progress
// @Tags challenges
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /challenges/{id}/end [delete]
func (cc *ChallengeController) End(c *fiber.Ctx) error {
	challengeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Challenge not found")
	}

	if err := cc.Challenges.End(middleware.UserID(c), uint(challengeID)); err != nil {
		return utils.FromError(c, cc.Log, err)
	}
	return c.JSON(fiber.Map{"message": "Challenge ended successfully"})
}

func (cc *ChallengeController) UserChallenges(c *fiber.Ctx) error {
	ucs, err := cc.Challenges.UserChallenges(middleware.UserID(c))
	if err != nil {
		return utils.FromError(c, cc.Log, err)
	}
	return c.JSON(fiber.Map{"userChallenges": ucs})
}

// CompleteToday godoc
// @Summary Complete a challenge day
// @Description Credits today's progress and reports milestone unlocks
// @Tags challenges
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user-challenge/{id}/complete [post]
func (cc *ChallengeController) CompleteToday(c *fiber.Ctx) error {
	userChallengeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Not found")
	}

	result, err := cc.Challenges.CompleteToday(middleware.UserID(c), uint(userChallengeID))
	if err != nil {
		return utils.FromError(c, cc.Log, err)
	}
	return c.JSON(fiber.Map{
		"message":            "Progress marked",
		"completedDays":      result.CompletedDays,
		"unlockedMilestones": result.UnlockedMilestones,
		"status":             result.Status,
	})
}

func (cc *ChallengeController) History(c *fiber.Ctx) error {
	userChallengeID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return utils.NotFound(c, "Not found")
	}

	logs, err := cc.Challenges.History(middleware.UserID(c), uint(userChallengeID), historyWindowDays)
	if err != nil {
		return utils.FromError(c, cc.Log, err)
	}
	return c.JSON(fiber.Map{"history": logs})
}
