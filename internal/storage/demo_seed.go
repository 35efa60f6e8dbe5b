package storage

import (
	"fmt"
	"time"

	"slotfinder-backend/internal/models"
	"slotfinder-backend/internal/validation"
)

// DefaultCategories are seeded into an empty store. Their ids are the fixed
// targets of the name-based category inference.
func DefaultCategories() []models.Category {
	desc := func(s string) *string { return &s }
	now := time.Now()
	cats := []models.Category{
		{ID: "cat-1", Name: "Engine / Motor", Color: "#3B82F6", Icon: "Settings", Description: desc("Engines, motors, drive systems")},
		{ID: "cat-2", Name: "Sensors / Control", Color: "#10B981", Icon: "Cpu", Description: desc("Sensors, switches, controllers")},
		{ID: "cat-3", Name: "Pumps / Valves / Fluids", Color: "#F59E0B", Icon: "Gauge", Description: desc("Pumps, valves, fluids, hydraulics")},
		{ID: "cat-4", Name: "Mechanical Parts", Color: "#EF4444", Icon: "Cog", Description: desc("Gears, belts, chains, couplings")},
		{ID: "cat-5", Name: "Tools / Equipment", Color: "#8B5CF6", Icon: "Wrench", Description: desc("Hand tools and shop equipment")},
	}
	for i := range cats {
		cats[i].CreatedAt = now
		cats[i].UpdatedAt = now
	}
	return cats
}

// demoParts fills the demo grid. Names are picked so the keyword inference
// spreads them across all five categories.
var demoParts = []string{
	"Sledge hammer", "Screwdriver set", "Adjustable wrench", "Pliers", "Electric drill motor",
	"Hand saw", "Tape measure", "Spirit level", "Utility knife", "Allen key set",
	"Socket wrench", "Pipe wrench", "Wire cutter", "Coping saw", "Wood chisel",
	"Metal file", "C-clamp", "Vise grip", "Rubber mallet", "Small hatchet",
	"Engine oil 5W30", "Synthetic motor oil", "Brake fluid", "Gearbox oil", "Steering fluid",
	"Car tire", "Off-road tire", "Inner tube", "Car battery", "Spark plug",
	"Air filter", "Oil filter element", "Fuel filter", "Brake pads", "Brake disc",
	"Shock absorber", "Wiper blade", "Headlight bulb", "Car fuse kit", "Hydraulic jack pump",
	"Jumper cables", "Tire pressure gauge", "Air compressor pump", "Car polisher motor", "Car shampoo",
	"Microfiber cloth", "Wash sponge", "Plastic bucket", "Safety goggles", "Work gloves",
	"Safety helmet", "Ear protectors", "Dust mask", "Reflective vest", "Safety boots",
	"Steel toolbox", "Tool bag", "Extension cord", "Power strip", "LED flashlight",
	"Work light", "Aluminium ladder", "Low stool", "Hand cart", "Garden spade",
	"Leaf rake", "Garden hose valve", "Paint brush", "Paint roller", "Masking tape",
	"Duct tape", "Electrical tape", "Instant adhesive", "Silicone sealant", "Lubricant spray",
	"Rust remover fluid", "Sandpaper", "Polishing wool", "Cable ties",
}

// Seed populates an empty demo store with the default categories and a
// scattered product layout. A store that already holds products is left
// untouched so snapshot state survives restarts.
func (s *MemoryStore) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.products) > 0 {
		return
	}
	s.seedLocked()
	s.persist()
}

func (s *MemoryStore) seedLocked() {
	if len(s.categories) == 0 {
		s.categories = DefaultCategories()
	}

	slotsPerBox := validation.DefaultRowsPerBox * validation.DefaultSlotsPerRow
	totalSlots := validation.DefaultBoxes * slotsPerBox

	positions := make([]models.Location, totalSlots)
	for i := 0; i < totalSlots; i++ {
		positions[i] = models.Location{
			BoxNo:  i/slotsPerBox + 1,
			RowNo:  (i%slotsPerBox)/validation.DefaultSlotsPerRow + 1,
			SlotNo: i%validation.DefaultSlotsPerRow + 1,
		}
	}

	// Deterministic LCG shuffle: the demo layout is scattered but identical
	// on every fresh start.
	seed := uint64(20260131)
	rand := func() uint64 {
		seed = (seed*1664525 + 1013904223) % (1 << 32)
		return seed
	}
	for i := len(positions) - 1; i > 0; i-- {
		j := int(rand() % uint64(i+1))
		positions[i], positions[j] = positions[j], positions[i]
	}

	base := time.Now().Add(-time.Duration(len(demoParts)) * time.Minute)
	for i, name := range demoParts {
		if i >= len(positions) {
			break
		}
		code := fmt.Sprintf("SKU-%04d", i+1)
		qr := fmt.Sprintf("QR-%04d", i+1)
		ts := base.Add(time.Duration(i) * time.Minute)
		s.products = append(s.products, models.Product{
			ID:          fmt.Sprintf("demo-%d", i+1),
			Name:        name,
			ProductCode: &code,
			QRCode:      &qr,
			BoxNo:       positions[i].BoxNo,
			RowNo:       positions[i].RowNo,
			SlotNo:      positions[i].SlotNo,
			CreatedAt:   ts,
			UpdatedAt:   ts,
		})
	}
}
