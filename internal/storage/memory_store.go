package storage

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"slotfinder-backend/internal/models"
	"slotfinder-backend/internal/validation"

	"github.com/google/uuid"
)

// MemoryStore backs demo mode when no database is configured. It is a plain
// instance guarded by a mutex, constructed at startup and injected into the
// handlers. Snapshots to a JSON file are optional and best-effort, the demo
// equivalent of the browser's localStorage.
type MemoryStore struct {
	mu     sync.Mutex
	limits validation.Limits
	infer  InferFunc

	products   []models.Product // insertion order
	categories []models.Category
	moves      []models.MoveHistory
	users      []models.User
	nextMoveID uint

	snapshotPath string
}

func NewMemoryStore(limits validation.Limits, infer InferFunc) *MemoryStore {
	return &MemoryStore{
		limits:     limits,
		infer:      infer,
		nextMoveID: 1,
	}
}

type snapshot struct {
	Products   []models.Product     `json:"products"`
	Categories []models.Category    `json:"categories"`
	Moves      []models.MoveHistory `json:"moves"`
}

// LoadSnapshot reads persisted demo state and enables write-through to the
// same path. A missing or unreadable file leaves the current state as is.
func (s *MemoryStore) LoadSnapshot(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshotPath = path

	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return err
	}
	s.products = snap.Products
	s.categories = snap.Categories
	s.moves = snap.Moves
	for _, m := range s.moves {
		if m.ID >= s.nextMoveID {
			s.nextMoveID = m.ID + 1
		}
	}
	return nil
}

// persist is best-effort; demo state is disposable so write failures are
// silently dropped. Callers hold the mutex.
func (s *MemoryStore) persist() {
	if s.snapshotPath == "" {
		return
	}
	snap := snapshot{Products: s.products, Categories: s.categories, Moves: s.moves}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(s.snapshotPath, raw, 0o644)
}

// Reset drops all state and reseeds the demo dataset.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = nil
	s.categories = nil
	s.moves = nil
	s.nextMoveID = 1
	s.seedLocked()
	s.persist()
}

func (s *MemoryStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

func (s *MemoryStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if err := validation.ValidateProductName(in.Name); err != nil {
		return nil, err
	}
	loc := models.Location{BoxNo: in.BoxNo, RowNo: in.RowNo, SlotNo: in.SlotNo}
	if err := s.limits.ValidateLocation(loc); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].Location() == loc {
			return nil, &DuplicateLocationError{Location: loc}
		}
	}

	now := time.Now()
	p := models.Product{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		ProductCode: in.ProductCode,
		QRCode:      in.QRCode,
		CategoryID:  in.CategoryID,
		BoxNo:       in.BoxNo,
		RowNo:       in.RowNo,
		SlotNo:      in.SlotNo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.products = append(s.products, p)
	s.persist()
	return &p, nil
}

func (s *MemoryStore) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.products {
		if s.products[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNotFound
	}
	p := s.products[idx] // work on a copy, commit only on success

	if in.Name != nil {
		if err := validation.ValidateProductName(*in.Name); err != nil {
			return nil, err
		}
		p.Name = *in.Name
	}
	if in.Description != nil {
		p.Description = in.Description
	}
	if in.ImageURL != nil {
		p.ImageURL = in.ImageURL
	}
	if in.ProductCode != nil {
		p.ProductCode = in.ProductCode
	}
	if in.QRCode != nil {
		p.QRCode = in.QRCode
	}
	if in.CategoryID != nil {
		p.CategoryID = in.CategoryID
	}

	if in.BoxNo != nil || in.RowNo != nil || in.SlotNo != nil {
		loc := p.Location()
		if in.BoxNo != nil {
			loc.BoxNo = *in.BoxNo
		}
		if in.RowNo != nil {
			loc.RowNo = *in.RowNo
		}
		if in.SlotNo != nil {
			loc.SlotNo = *in.SlotNo
		}
		if err := s.limits.ValidateLocation(loc); err != nil {
			return nil, err
		}
		for i := range s.products {
			if i != idx && s.products[i].Location() == loc {
				return nil, &DuplicateLocationError{Location: loc}
			}
		}
		p.BoxNo, p.RowNo, p.SlotNo = loc.BoxNo, loc.RowNo, loc.SlotNo
	}

	p.UpdatedAt = time.Now()
	s.products[idx] = p
	s.persist()
	return &p, nil
}

func (s *MemoryStore) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			s.persist()
			return nil
		}
	}
	// Already absent: deletion is idempotent.
	return nil
}

func (s *MemoryStore) FindByCode(ctx context.Context, value string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// QR codes take precedence over product codes.
	for i := range s.products {
		if s.products[i].QRCode != nil && *s.products[i].QRCode == value {
			p := s.products[i]
			return &p, nil
		}
	}
	for i := range s.products {
		if s.products[i].ProductCode != nil && *s.products[i].ProductCode == value {
			p := s.products[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) SearchProducts(ctx context.Context, query, categoryID string) ([]models.Product, error) {
	if query == "" && categoryID == "" {
		return []models.Product{}, nil
	}

	s.mu.Lock()
	matched := make([]models.Product, 0, len(s.products))
	lower := strings.ToLower(query)
	for i := range s.products {
		if query == "" || strings.Contains(strings.ToLower(s.products[i].Name), lower) {
			matched = append(matched, s.products[i])
		}
	}
	s.mu.Unlock()

	if categoryID != "" {
		matched = filterByCategory(matched, categoryID, s.infer)
	}
	return matched, nil
}

func (s *MemoryStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *MemoryStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			cat := s.categories[i]
			return &cat, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	cat := models.Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Color:       in.Color,
		Icon:        in.Icon,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.categories = append(s.categories, cat)
	s.persist()
	return &cat, nil
}

func (s *MemoryStore) UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID != id {
			continue
		}
		cat := &s.categories[i]
		if in.Name != nil {
			cat.Name = *in.Name
		}
		if in.Color != nil {
			cat.Color = *in.Color
		}
		if in.Icon != nil {
			cat.Icon = *in.Icon
		}
		if in.Description != nil {
			cat.Description = in.Description
		}
		cat.UpdatedAt = time.Now()
		out := *cat
		s.persist()
		return &out, nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].CategoryID != nil && *s.products[i].CategoryID == id {
			return &validation.ValidationError{Message: "Category still has products assigned"}
		}
	}
	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			s.persist()
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) RecordMove(ctx context.Context, in RecordMoveInput) (*models.MoveHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := models.MoveHistory{
		ID:          s.nextMoveID,
		ProductID:   in.ProductID,
		ProductName: in.ProductName,
		FromBox:     in.From.BoxNo,
		FromRow:     in.From.RowNo,
		FromSlot:    in.From.SlotNo,
		ToBox:       in.To.BoxNo,
		ToRow:       in.To.RowNo,
		ToSlot:      in.To.SlotNo,
		MovedAt:     time.Now(),
		MovedBy:     in.MovedBy,
		Notes:       in.Notes,
	}
	s.nextMoveID++
	s.moves = append(s.moves, rec)
	s.persist()
	return &rec, nil
}

func (s *MemoryStore) ListMoves(ctx context.Context, limit int, productID string) ([]models.MoveHistory, error) {
	if limit <= 0 {
		limit = DefaultMoveLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.MoveHistory, 0, limit)
	for i := len(s.moves) - 1; i >= 0 && len(out) < limit; i-- {
		m := s.moves[i]
		if productID != "" && (m.ProductID == nil || *m.ProductID != productID) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = uint(len(s.users) + 1)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Email == email {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CountUsers(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.users)), nil
}
