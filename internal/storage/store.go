package storage

import (
	"context"

	"slotfinder-backend/internal/models"
)

// InferFunc maps a product name to a category id. Used as the fallback when
// a product has no explicit category assignment.
type InferFunc func(name string) string

type CreateProductInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	ProductCode *string `json:"product_code"`
	QRCode      *string `json:"qr_code"`
	CategoryID  *string `json:"category_id"`
	BoxNo       int     `json:"box_no"`
	RowNo       int     `json:"row_no"`
	SlotNo      int     `json:"slot_no"`
}

// UpdateProductInput is a partial patch; nil fields are left untouched.
type UpdateProductInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	ProductCode *string `json:"product_code"`
	QRCode      *string `json:"qr_code"`
	CategoryID  *string `json:"category_id"`
	BoxNo       *int    `json:"box_no"`
	RowNo       *int    `json:"row_no"`
	SlotNo      *int    `json:"slot_no"`
}

type CreateCategoryInput struct {
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Icon        string  `json:"icon"`
	Description *string `json:"description"`
}

type UpdateCategoryInput struct {
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

type RecordMoveInput struct {
	ProductID   *string         `json:"product_id"`
	ProductName string          `json:"product_name"`
	From        models.Location `json:"from"`
	To          models.Location `json:"to"`
	MovedBy     *string         `json:"moved_by"`
	Notes       *string         `json:"notes"`
}

// DefaultMoveLimit is how many history records ListMoves returns when the
// caller does not ask for a specific limit.
const DefaultMoveLimit = 50

// Store is the single owner of products, categories and the move ledger.
// Implemented by GormStore (Postgres) and MemoryStore (demo mode).
type Store interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	FindByCode(ctx context.Context, value string) (*models.Product, error)
	SearchProducts(ctx context.Context, query, categoryID string) ([]models.Product, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id string, in UpdateCategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error

	RecordMove(ctx context.Context, in RecordMoveInput) (*models.MoveHistory, error)
	ListMoves(ctx context.Context, limit int, productID string) ([]models.MoveHistory, error)

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
}
