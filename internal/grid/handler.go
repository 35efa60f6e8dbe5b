package grid

import (
	"slotfinder-backend/internal/config"

	"github.com/gofiber/fiber/v2"
)

type axisRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type configResponse struct {
	Boxes       int `json:"boxes"`
	RowsPerBox  int `json:"rows_per_box"`
	SlotsPerRow int `json:"slots_per_row"`
	TotalSlots  int `json:"total_slots"`
	Limits      struct {
		Boxes       axisRange `json:"boxes"`
		RowsPerBox  axisRange `json:"rows_per_box"`
		SlotsPerRow axisRange `json:"slots_per_row"`
	} `json:"limits"`
}

// GET /api/grid-config — default grid dimensions plus the bounds clients
// may stretch them to. The grid itself is presentation state; the server
// only owns the bounds it validates locations against.
func ConfigHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var res configResponse
		res.Boxes = cfg.GridBoxes
		res.RowsPerBox = cfg.GridRowsPerBox
		res.SlotsPerRow = cfg.GridSlotsPerRow
		res.TotalSlots = cfg.GridBoxes * cfg.GridRowsPerBox * cfg.GridSlotsPerRow
		res.Limits.Boxes = axisRange{Min: cfg.BoxMin, Max: cfg.BoxMax}
		res.Limits.RowsPerBox = axisRange{Min: cfg.RowMin, Max: cfg.RowMax}
		res.Limits.SlotsPerRow = axisRange{Min: cfg.SlotMin, Max: cfg.SlotMax}
		return c.JSON(res)
	}
}
