package products

import (
	"strings"

	"slotfinder-backend/internal/httperr"
	"slotfinder-backend/internal/locator"
	"slotfinder-backend/internal/models"
	"slotfinder-backend/internal/storage"
	"slotfinder-backend/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GET /api/products
func ListProductsHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		products, err := store.ListProducts(c.Context())
		if err != nil {
			return httperr.ToFiber(err)
		}
		return c.JSON(fiber.Map{"products": products})
	}
}

// POST /api/products
func CreateProductHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body storage.CreateProductInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Name = strings.TrimSpace(body.Name)

		p, err := store.CreateProduct(c.Context(), body)
		if err != nil {
			return httperr.ToFiber(err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product": p})
	}
}

// PUT /api/products/:id
func UpdateProductHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body storage.UpdateProductInput
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		p, err := store.UpdateProduct(c.Context(), c.Params("id"), body)
		if err != nil {
			return httperr.ToFiber(err)
		}
		return c.JSON(fiber.Map{"product": p})
	}
}

// DELETE /api/products/:id — succeeds whether or not the product exists.
func DeleteProductHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := store.DeleteProduct(c.Context(), c.Params("id")); err != nil {
			return httperr.ToFiber(err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}

// GET /api/products/search?q=&category= — empty query and no category is an
// empty result, not the full list.
func SearchProductsHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := validation.SanitizeQuery(c.Query("q"))
		categoryID := c.Query("category")

		products, err := store.SearchProducts(c.Context(), query, categoryID)
		if err != nil {
			return httperr.ToFiber(err)
		}
		return c.JSON(fiber.Map{"products": products})
	}
}

// GET /api/products/lookup?qr=|code= — scanned-code resolution.
func LookupByCodeHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value := c.Query("qr")
		if value == "" {
			value = c.Query("code")
		}
		if value == "" {
			value = c.Query("barcode")
		}
		if value == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"product": nil})
		}

		p, err := store.FindByCode(c.Context(), value)
		if err != nil {
			return httperr.ToFiber(err)
		}
		if p == nil {
			return c.JSON(fiber.Map{"product": nil})
		}
		return c.JSON(fiber.Map{"product": p})
	}
}

type MoveRequest struct {
	ProductID string  `json:"product_id"`
	ToBox     *int    `json:"to_box"`
	ToRow     *int    `json:"to_row"`
	ToSlot    *int    `json:"to_slot"`
	MovedBy   *string `json:"moved_by"`
}

// POST /api/products/move
func MoveProductHandler(mover *locator.Mover) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body MoveRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ProductID == "" || body.ToBox == nil || body.ToRow == nil || body.ToSlot == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
		}

		to := models.Location{BoxNo: *body.ToBox, RowNo: *body.ToRow, SlotNo: *body.ToSlot}
		p, err := mover.Move(c.Context(), body.ProductID, to, body.MovedBy)
		if err != nil {
			return httperr.ToFiber(err)
		}
		return c.JSON(fiber.Map{"product": p})
	}
}

// POST /api/products/move/undo — {product:null} when there is nothing to undo.
func UndoMoveHandler(mover *locator.Mover) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := mover.Undo(c.Context())
		if err != nil {
			return httperr.ToFiber(err)
		}
		if p == nil {
			return c.JSON(fiber.Map{"product": nil})
		}
		return c.JSON(fiber.Map{"product": p})
	}
}

// POST /api/products/move/redo — {product:null} when there is nothing to redo.
func RedoMoveHandler(mover *locator.Mover) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := mover.Redo(c.Context())
		if err != nil {
			return httperr.ToFiber(err)
		}
		if p == nil {
			return c.JSON(fiber.Map{"product": nil})
		}
		return c.JSON(fiber.Map{"product": p})
	}
}
