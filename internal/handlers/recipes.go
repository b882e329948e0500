package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/matplanerare/matplanerare/internal/scale"
	"github.com/matplanerare/matplanerare/internal/store"
	"github.com/matplanerare/matplanerare/internal/types"
	"github.com/matplanerare/matplanerare/internal/utils"
)

// RecipesHandler handles recipe bank routes
type RecipesHandler struct {
	Store *store.Store
}

type recipeRequest struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	OriginalPortions types.FlexInt `json:"originalPortions"`
	Ingredients      string        `json:"ingredients"`
	Instructions     string        `json:"instructions"`
}

// importRequest matches the backup file shape: recipes keyed by id.
type importRequest struct {
	Recipes map[string]recipeRequest `json:"recipes"`
}

type scaledResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Portions    int      `json:"portions"`
	Ingredients []string `json:"ingredients"`
}

// List handles GET /api/recipes
// @Summary List recipes
// @Description List every recipe in the shared bank, keyed by id
// @Tags Recipes
// @Produce json
// @Success 200 {object} map[string]store.Recipe
// @Router /recipes [get]
func (h *RecipesHandler) List(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, h.Store.Recipes(), fiber.StatusOK)
}

// Get handles GET /api/recipes/:id
// @Summary Get one recipe
// @Tags Recipes
// @Produce json
// @Param id path string true "Recipe ID"
// @Success 200 {object} store.Recipe
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [get]
func (h *RecipesHandler) Get(c *fiber.Ctx) error {
	recipe, err := h.Store.Recipe(c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err, "getRecipe")
	}
	return utils.SuccessResponse(c, recipe, fiber.StatusOK)
}

// Create handles POST /api/recipes
// @Summary Create a recipe
// @Description Create a new recipe owned by the caller
// @Tags Recipes
// @Accept json
// @Produce json
// @Param recipe body recipeRequest true "Recipe"
// @Success 201 {object} store.Recipe
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /recipes [post]
func (h *RecipesHandler) Create(c *fiber.Ctx) error {
	var req recipeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "createRecipe")
	}

	saved, err := h.Store.SaveRecipe(store.Recipe{
		Name:             req.Name,
		OriginalPortions: req.OriginalPortions.Int(),
		Ingredients:      req.Ingredients,
		Instructions:     req.Instructions,
	})
	if err != nil {
		return storeErrorResponse(c, err, "createRecipe")
	}
	return utils.SuccessResponse(c, saved, fiber.StatusCreated)
}

// Update handles PUT /api/recipes/:id
// @Summary Edit a recipe
// @Description Overwrite a recipe's fields; only its owner or the admin may
// @Tags Recipes
// @Accept json
// @Produce json
// @Param id path string true "Recipe ID"
// @Param recipe body recipeRequest true "Recipe"
// @Success 200 {object} store.Recipe
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [put]
func (h *RecipesHandler) Update(c *fiber.Ctx) error {
	existing, err := h.Store.Recipe(c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err, "updateRecipe")
	}
	if !h.canModify(c, existing) {
		return utils.ErrorResponse(c, "Only the recipe owner or the admin may edit it",
			fiber.StatusForbidden, "updateRecipe")
	}

	var req recipeRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "updateRecipe")
	}

	saved, err := h.Store.SaveRecipe(store.Recipe{
		ID:               existing.ID,
		Name:             req.Name,
		OriginalPortions: req.OriginalPortions.Int(),
		Ingredients:      req.Ingredients,
		Instructions:     req.Instructions,
	})
	if err != nil {
		return storeErrorResponse(c, err, "updateRecipe")
	}
	return utils.SuccessResponse(c, saved, fiber.StatusOK)
}

// Delete handles DELETE /api/recipes/:id
// @Summary Delete a recipe
// @Description Delete a recipe and clear it from every planned dinner
// @Tags Recipes
// @Produce json
// @Param id path string true "Recipe ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipes/{id} [delete]
func (h *RecipesHandler) Delete(c *fiber.Ctx) error {
	recipe, err := h.Store.Recipe(c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err, "deleteRecipe")
	}
	if !h.canModify(c, recipe) {
		return utils.ErrorResponse(c, "Only the recipe owner or the admin may delete it",
			fiber.StatusForbidden, "deleteRecipe")
	}

	if err := h.Store.DeleteRecipe(recipe.ID); err != nil {
		return storeErrorResponse(c, err, "deleteRecipe")
	}
	return utils.MessageResponse(c, "Recipe deleted")
}

// Import handles POST /api/recipes/import
// @Summary Import recipes from a backup
// @Description Merge backup recipes into the bank; colliding ids are renamed, never overwritten
// @Tags Recipes
// @Accept json
// @Produce json
// @Param body body importRequest true "Recipes to import"
// @Success 200 {object} store.ImportResult
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /recipes/import [post]
func (h *RecipesHandler) Import(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.ErrorResponse(c, "Invalid request body", fiber.StatusBadRequest, "importRecipes")
	}

	recipes := make([]store.Recipe, 0, len(req.Recipes))
	for key, r := range req.Recipes {
		if r.ID == "" {
			r.ID = key
		}
		recipes = append(recipes, store.Recipe{
			ID:               r.ID,
			Name:             r.Name,
			OriginalPortions: r.OriginalPortions.Int(),
			Ingredients:      r.Ingredients,
			Instructions:     r.Instructions,
		})
	}

	result, err := h.Store.ImportRecipes(recipes)
	if err != nil {
		return storeErrorResponse(c, err, "importRecipes")
	}
	return utils.SuccessResponse(c, result, fiber.StatusOK)
}

// Scaled handles GET /api/recipes/:id/scaled?portions=N
// @Summary Scale a recipe
// @Description Return the ingredient list scaled to the requested portion count
// @Tags Recipes
// @Produce json
// @Param id path string true "Recipe ID"
// @Param portions query int true "Target portions"
// @Success 200 {object} scaledResponse
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /recipes/{id}/scaled [get]
func (h *RecipesHandler) Scaled(c *fiber.Ctx) error {
	recipe, err := h.Store.Recipe(c.Params("id"))
	if err != nil {
		return storeErrorResponse(c, err, "scaleRecipe")
	}

	portions := c.QueryInt("portions", recipe.OriginalPortions)
	return utils.SuccessResponse(c, scaledResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Portions:    portions,
		Ingredients: scale.Ingredients(recipe.Ingredients, recipe.OriginalPortions, portions),
	}, fiber.StatusOK)
}

// canModify allows the owner and the admin to change a recipe.
func (h *RecipesHandler) canModify(c *fiber.Ctx, r store.Recipe) bool {
	user := currentUser(c)
	return user != "" && (r.CreatedBy == user || h.Store.IsAdmin())
}
