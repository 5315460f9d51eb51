package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/helpdesk-tools/inventory/internal/domain"
)

// ProductRepository defines domain-specific operations for stock products
type ProductRepository interface {
	Repository[domain.Product, int64]
}

// productRepositoryImpl implements ProductRepository
type productRepositoryImpl struct {
	db *sql.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepositoryImpl{db: db}
}

const productColumns = "id, name, quantity, price, created_at, updated_at"

func validateProduct(p *domain.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidEntity)
	}
	if p.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative: %w", ErrInvalidEntity)
	}
	if p.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", ErrInvalidEntity)
	}
	return nil
}

// Save creates or updates a product
func (r *productRepositoryImpl) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := validateProduct(&product); err != nil {
		return domain.Product{}, err
	}

	if product.ID == 0 {
		result, err := r.db.ExecContext(ctx,
			"INSERT INTO products (name, quantity, price) VALUES (?, ?, ?)",
			product.Name, product.Quantity, product.Price)
		if err != nil {
			return domain.Product{}, fmt.Errorf("failed to create product: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return domain.Product{}, fmt.Errorf("failed to get product ID: %w", err)
		}
		return r.FindByID(ctx, id)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, quantity = ?, price = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		product.Name, product.Quantity, product.Price, product.ID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Product{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.Product{}, fmt.Errorf("product with ID %d: %w", product.ID, ErrNotFound)
	}
	return r.FindByID(ctx, product.ID)
}

// FindByID retrieves a product by its ID
func (r *productRepositoryImpl) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	var p domain.Product
	err := r.db.QueryRowContext(ctx, "SELECT "+productColumns+" FROM products WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return domain.Product{}, fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("failed to find product: %w", err)
	}
	return p, nil
}

// FindAll retrieves all products in insertion order
func (r *productRepositoryImpl) FindAll(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+productColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

// DeleteByID removes a product by its ID
func (r *productRepositoryImpl) DeleteByID(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("product with ID %d: %w", id, ErrNotFound)
	}
	return nil
}

// ExistsByID checks if a product exists by its ID
func (r *productRepositoryImpl) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return count > 0, nil
}
