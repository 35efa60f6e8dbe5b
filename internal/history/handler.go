package history

import (
	"strconv"

	"slotfinder-backend/internal/httperr"
	"slotfinder-backend/internal/models"
	"slotfinder-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
)

// GET /api/move-history?limit=50&product_id=...
func ListMoveHistoryHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, _ := strconv.Atoi(c.Query("limit"))
		productID := c.Query("product_id")

		moves, err := store.ListMoves(c.Context(), limit, productID)
		if err != nil {
			return httperr.ToFiber(err)
		}
		return c.JSON(moves)
	}
}

type RecordMoveRequest struct {
	ProductID   *string `json:"product_id"`
	ProductName string  `json:"product_name"`
	FromBox     *int    `json:"from_box"`
	FromRow     int     `json:"from_row"`
	FromSlot    int     `json:"from_slot"`
	ToBox       *int    `json:"to_box"`
	ToRow       int     `json:"to_row"`
	ToSlot      int     `json:"to_slot"`
	MovedBy     *string `json:"moved_by"`
	Notes       *string `json:"notes"`
}

// POST /api/move-history — direct record append, used by clients that apply
// moves themselves (demo grid drag-and-drop).
func RecordMoveHandler(store storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RecordMoveRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.ProductName == "" || body.FromBox == nil || body.ToBox == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Missing required fields")
		}

		rec, err := store.RecordMove(c.Context(), storage.RecordMoveInput{
			ProductID:   body.ProductID,
			ProductName: body.ProductName,
			From:        models.Location{BoxNo: *body.FromBox, RowNo: body.FromRow, SlotNo: body.FromSlot},
			To:          models.Location{BoxNo: *body.ToBox, RowNo: body.ToRow, SlotNo: body.ToSlot},
			MovedBy:     body.MovedBy,
			Notes:       body.Notes,
		})
		if err != nil {
			return httperr.ToFiber(err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}
