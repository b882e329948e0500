package handlers

import (
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/matplanerare/matplanerare/internal/store"
	"github.com/matplanerare/matplanerare/internal/utils"
	"github.com/matplanerare/matplanerare/internal/week"
)

// MealPlanHandler handles weekly planning routes
type MealPlanHandler struct {
	Store *store.Store
}

type setMealRequest struct {
	Slot     string  `json:"slot"`
	RecipeID *string `json:"recipeId"`
}

type weekResponse struct {
	WeekID string   `json:"weekId"`
	Start  string   `json:"start"`
	Days   []string `json:"days"`
}

// Get handles GET /api/mealplan/:week
// @Summary Get a week's plan
// @Description Get the session user's meal plan for one week
// @Tags MealPlan
// @Produce json
// @Param week path string true "Week ID (YYYY-Www)"
// @Success 200 {object} store.MealPlan
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /mealplan/{week} [get]
func (h *MealPlanHandler) Get(c *fiber.Ctx) error {
	plan, err := h.Store.WeekPlan(currentUser(c), c.Params("week"))
	if err != nil {
		return storeErrorResponse(c, err, "getMealPlan")
	}
	return utils.SuccessResponse(c, plan, fiber.StatusOK)
}

// Set handles POST /api/mealplan/:week/:day
// @Summary Plan a meal
// @Description Write one slot of the session user's weekly plan; a null recipeId clears it
// @Tags MealPlan
// @Accept json
// @Produce json
// @Param week path string true "Week ID (YYYY-Www)"
// @Param day path string true "Day key (måndag..söndag)"
// @Param body body setMealRequest true "Slot assignment"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Router /mealplan/{week}/{day} [post]
func (h *MealPlanHandler) Set(c *fiber.Ctx) error {
	var req setMealRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "setMeal")
	}
	if req.Slot == "" {
		req.Slot = store.SlotDinner
	}

	day, err := url.PathUnescape(c.Params("day"))
	if err != nil || day == "" {
		return utils.ErrorResponse(c, "Invalid day", fiber.StatusBadRequest, "setMeal")
	}

	if err := h.Store.SetMeal(currentUser(c), c.Params("week"), day, req.Slot, req.RecipeID); err != nil {
		return storeErrorResponse(c, err, "setMeal")
	}
	return utils.MessageResponse(c, "Meal planned")
}

// Week handles GET /api/week?date=YYYY-MM-DD&offset=N
// @Summary Resolve a week id
// @Description Resolve a date (default today) plus a week offset to a week id and its Monday
// @Tags MealPlan
// @Produce json
// @Param date query string false "Date (YYYY-MM-DD), defaults to today"
// @Param offset query int false "Weeks to shift, may be negative"
// @Success 200 {object} weekResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /week [get]
func (h *MealPlanHandler) Week(c *fiber.Ctx) error {
	day := time.Now().UTC()
	if q := c.Query("date"); q != "" {
		parsed, err := time.Parse("2006-01-02", q)
		if err != nil {
			return utils.ErrorResponse(c, "Invalid date, expected YYYY-MM-DD", fiber.StatusBadRequest, "week")
		}
		day = parsed
	}
	day = week.Shift(day, c.QueryInt("offset", 0))

	return utils.SuccessResponse(c, weekResponse{
		WeekID: week.ID(day),
		Start:  week.Start(day).Format("2006-01-02"),
		Days:   store.Days,
	}, fiber.StatusOK)
}
