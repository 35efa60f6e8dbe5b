package categories

import (
	"strings"

	"slotfinder-backend/internal/httperr"
	"slotfinder-backend/internal/models"
	"slotfinder-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// CategoryResponse carries the category plus how many products currently
// fall into it (explicit assignment, or inference when unassigned).
type CategoryResponse struct {
	models.Category
	ProductCount int `json:"product_count"`
}

// GET /api/categories
func ListCategoriesHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cats, err := store.ListCategories(c.Context())
		if err != nil {
			return httperr.ToFiber(err)
		}
		products, err := store.ListProducts(c.Context())
		if err != nil {
			return httperr.ToFiber(err)
		}

		counts := make(map[string]int, len(cats))
		for _, p := range products {
			if p.CategoryID != nil && *p.CategoryID != "" {
				counts[*p.CategoryID]++
			} else {
				counts[InferCategoryID(p.Name)]++
			}
		}

		res := make([]CategoryResponse, 0, len(cats))
		for _, cat := range cats {
			res = append(res, CategoryResponse{Category: cat, ProductCount: counts[cat.ID]})
		}
		return c.JSON(res)
	}
}

// GET /api/categories/:id
func GetCategoryHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, err := store.GetCategory(c.Context(), c.Params("id"))
		if err != nil {
			return httperr.ToFiber(err)
		}
		return c.JSON(cat)
	}
}

// POST /api/categories
func CreateCategoryHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body storage.CreateCategoryInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		body.Color = strings.TrimSpace(body.Color)
		body.Icon = strings.TrimSpace(body.Icon)
		if body.Name == "" || body.Color == "" || body.Icon == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name, color, and icon are required")
		}

		cat, err := store.CreateCategory(c.Context(), body)
		if err != nil {
			return httperr.ToFiber(err)
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

// PUT /api/categories/:id
func UpdateCategoryHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body storage.UpdateCategoryInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Name != nil && strings.TrimSpace(*body.Name) == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Category name cannot be empty")
		}

		cat, err := store.UpdateCategory(c.Context(), c.Params("id"), body)
		if err != nil {
			return httperr.ToFiber(err)
		}
		return c.JSON(cat)
	}
}

// DELETE /api/categories/:id
func DeleteCategoryHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.DeleteCategory(c.Context(), c.Params("id")); err != nil {
			return httperr.ToFiber(err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
