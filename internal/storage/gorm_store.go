package storage

import (
	"context"
	"errors"
	"time"

	"slotfinder-backend/internal/models"
	"slotfinder-backend/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore is the production store backed by Postgres. The duplicate-slot
// check runs before every write, and the composite unique index on
// (box_no,row_no,slot_no) closes the check-then-write race: a second writer
// that slips past the check fails on the index and is reported as the same
// duplicate-location error.
type GormStore struct {
	db     *gorm.DB
	limits validation.Limits
	infer  InferFunc
}

func NewGormStore(db *gorm.DB, limits validation.Limits, infer InferFunc) *GormStore {
	return &GormStore{db: db, limits: limits, infer: infer}
}

func (s *GormStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&products).Error; err != nil {
		return nil, storageErr("list products", err)
	}
	return products, nil
}

func (s *GormStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("get product", err)
	}
	return &p, nil
}

func (s *GormStore) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if err := validation.ValidateProductName(in.Name); err != nil {
		return nil, err
	}
	loc := models.Location{BoxNo: in.BoxNo, RowNo: in.RowNo, SlotNo: in.SlotNo}
	if err := s.limits.ValidateLocation(loc); err != nil {
		return nil, err
	}
	if err := s.checkSlotFree(ctx, loc, ""); err != nil {
		return nil, err
	}

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
	}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateLocationError{Location: loc}
		}
		return nil, storageErr("create product", err)
	}
	return &p, nil
}

func (s *GormStore) UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error) {
	p, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

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
		if err := s.checkSlotFree(ctx, loc, id); err != nil {
			return nil, err
		}
		p.BoxNo, p.RowNo, p.SlotNo = loc.BoxNo, loc.RowNo, loc.SlotNo
	}

	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &DuplicateLocationError{Location: p.Location()}
		}
		return nil, storageErr("update product", err)
	}
	return p, nil
}

// DeleteProduct is idempotent: deleting an absent id succeeds. Move-history
// rows referencing the product are left in place.
func (s *GormStore) DeleteProduct(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return storageErr("delete product", err)
	}
	return nil
}

// FindByCode resolves a scanned value: qr_code first, product_code second.
// Codes are not unique, the first match wins.
func (s *GormStore) FindByCode(ctx context.Context, value string) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).First(&p, "qr_code = ?", value).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageErr("find by qr code", err)
	}

	err = s.db.WithContext(ctx).First(&p, "product_code = ?", value).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("find by product code", err)
	}
	return &p, nil
}

func (s *GormStore) SearchProducts(ctx context.Context, query, categoryID string) ([]models.Product, error) {
	// Empty query with no category filter is an empty result by contract;
	// callers wanting everything use ListProducts.
	if query == "" && categoryID == "" {
		return []models.Product{}, nil
	}

	var products []models.Product
	dbq := s.db.WithContext(ctx).Model(&models.Product{}).Order("name asc")
	if query != "" {
		dbq = dbq.Where("name ILIKE ?", "%"+query+"%")
	}
	if err := dbq.Find(&products).Error; err != nil {
		return nil, storageErr("search products", err)
	}

	if categoryID == "" {
		return products, nil
	}
	return filterByCategory(products, categoryID, s.infer), nil
}

func (s *GormStore) checkSlotFree(ctx context.Context, loc models.Location, excludeID string) error {
	dbq := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("box_no = ? AND row_no = ? AND slot_no = ?", loc.BoxNo, loc.RowNo, loc.SlotNo)
	if excludeID != "" {
		dbq = dbq.Where("id <> ?", excludeID)
	}
	var count int64
	if err := dbq.Count(&count).Error; err != nil {
		return storageErr("check slot", err)
	}
	if count > 0 {
		return &DuplicateLocationError{Location: loc}
	}
	return nil
}

func (s *GormStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, storageErr("list categories", err)
	}
	return categories, nil
}

func (s *GormStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var cat models.Category
	err := s.db.WithContext(ctx).First(&cat, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("get category", err)
	}
	return &cat, nil
}

func (s *GormStore) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	cat := models.Category{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Color:       in.Color,
		Icon:        in.Icon,
		Description: in.Description,
	}
	if err := s.db.WithContext(ctx).Create(&cat).Error; err != nil {
		return nil, storageErr("create category", err)
	}
	return &cat, nil
}

func (s *GormStore) UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (*models.Category, error) {
	cat, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
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
	if err := s.db.WithContext(ctx).Save(cat).Error; err != nil {
		return nil, storageErr("update category", err)
	}
	return cat, nil
}

func (s *GormStore) DeleteCategory(ctx context.Context, id string) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).
		Where("category_id = ?", id).Count(&count).Error; err != nil {
		return storageErr("delete category", err)
	}
	if count > 0 {
		return &validation.ValidationError{Message: "Category still has products assigned"}
	}
	if err := s.db.WithContext(ctx).Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		return storageErr("delete category", err)
	}
	return nil
}

func (s *GormStore) RecordMove(ctx context.Context, in RecordMoveInput) (*models.MoveHistory, error) {
	rec := models.MoveHistory{
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
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, storageErr("record move", err)
	}
	return &rec, nil
}

func (s *GormStore) ListMoves(ctx context.Context, limit int, productID string) ([]models.MoveHistory, error) {
	if limit <= 0 {
		limit = DefaultMoveLimit
	}
	dbq := s.db.WithContext(ctx).Model(&models.MoveHistory{}).
		Order("moved_at desc, id desc").Limit(limit)
	if productID != "" {
		dbq = dbq.Where("product_id = ?", productID)
	}
	var moves []models.MoveHistory
	if err := dbq.Find(&moves).Error; err != nil {
		return nil, storageErr("list moves", err)
	}
	return moves, nil
}

func (s *GormStore) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return storageErr("create user", err)
	}
	return nil
}

func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("get user", err)
	}
	return &user, nil
}

func (s *GormStore) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, storageErr("count users", err)
	}
	return count, nil
}

// filterByCategory keeps products whose effective category matches: the
// explicit assignment when present, otherwise the name-based inference.
func filterByCategory(products []models.Product, categoryID string, infer InferFunc) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		effective := ""
		if p.CategoryID != nil && *p.CategoryID != "" {
			effective = *p.CategoryID
		} else if infer != nil {
			effective = infer(p.Name)
		}
		if effective == categoryID {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
