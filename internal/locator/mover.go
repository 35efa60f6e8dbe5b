package locator

import (
	"context"
	"sync"

	"slotfinder-backend/internal/models"
	"slotfinder-backend/internal/storage"

	"go.uber.org/zap"
)

// HistoryLimit bounds the in-memory undo history. Old moves stay in the
// persistent move ledger either way.
const HistoryLimit = 100

// Mover owns the relocation composite: read the current slot, update the
// product through the store (which enforces occupancy), then append to the
// move ledger. The ledger append is best-effort — a failed append is logged
// and swallowed because the relocation itself already committed.
//
// The undo history lives here, in memory only; a restart discards it.
type Mover struct {
	store  storage.Store
	logger *zap.Logger

	mu      sync.Mutex
	history *History
}

func NewMover(store storage.Store, logger *zap.Logger) *Mover {
	return &Mover{
		store:   store,
		logger:  logger,
		history: NewHistory(HistoryLimit),
	}
}

// Move relocates a product. Moving a product onto the slot it already
// occupies is accepted as a no-op: no ledger record, no undo entry.
func (m *Mover) Move(ctx context.Context, productID string, to models.Location, movedBy *string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, err := m.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	from := p.Location()
	if from == to {
		return p, nil
	}

	updated, err := m.applyLocation(ctx, productID, to)
	if err != nil {
		return nil, err
	}

	m.record(ctx, updated, from, to, movedBy, nil)
	m.history.Push(MoveEntry{
		ProductID:   updated.ID,
		ProductName: updated.Name,
		From:        from,
		To:          to,
	})
	return updated, nil
}

// Undo reverts the most recent move by applying its inverse through the
// regular store path, so occupancy checks still hold. With nothing to undo
// it returns (nil, nil). A failed apply leaves the history index unchanged.
func (m *Mover) Undo(ctx context.Context) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.history.PeekUndo()
	if !ok {
		return nil, nil
	}
	updated, err := m.applyLocation(ctx, entry.ProductID, entry.From)
	if err != nil {
		return nil, err
	}
	m.history.StepBack()

	notes := "undo"
	m.record(ctx, updated, entry.To, entry.From, nil, &notes)
	return updated, nil
}

// Redo re-applies the most recently undone move. With nothing to redo it
// returns (nil, nil).
func (m *Mover) Redo(ctx context.Context) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.history.PeekRedo()
	if !ok {
		return nil, nil
	}
	updated, err := m.applyLocation(ctx, entry.ProductID, entry.To)
	if err != nil {
		return nil, err
	}
	m.history.StepForward()

	notes := "redo"
	m.record(ctx, updated, entry.From, entry.To, nil, &notes)
	return updated, nil
}

func (m *Mover) applyLocation(ctx context.Context, productID string, loc models.Location) (*models.Product, error) {
	box, row, slot := loc.BoxNo, loc.RowNo, loc.SlotNo
	return m.store.UpdateProduct(ctx, productID, storage.UpdateProductInput{
		BoxNo:  &box,
		RowNo:  &row,
		SlotNo: &slot,
	})
}

func (m *Mover) record(ctx context.Context, p *models.Product, from, to models.Location, movedBy, notes *string) {
	_, err := m.store.RecordMove(ctx, storage.RecordMoveInput{
		ProductID:   &p.ID,
		ProductName: p.Name,
		From:        from,
		To:          to,
		MovedBy:     movedBy,
		Notes:       notes,
	})
	if err != nil {
		m.logger.Warn("move history append failed",
			zap.String("product_id", p.ID),
			zap.Error(err))
	}
}
