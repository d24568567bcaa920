package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"ecommerce-platform/internal/models"
)

// ProductRepository handles products and the per-user cart and wishlist relations
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// relation tables between users and products
const (
	wishlistTable = "wishlist_items"
	cartTable     = "cart_items"
)

// productSelect yields product columns, the category and the viewer flags.
// The viewer id is bound to the placeholder substituted for %s.
const productSelect = `
	SELECT p.id, p.name, p.price, p.discount, p.discount_amount, p.category_id, p.featured,
		p.color, p.description, p.inventory, p.image, p.image_id, p.average_rating,
		p.num_of_reviews, p.created_at, p.updated_at, c.id, c.name,
		EXISTS (SELECT 1 FROM wishlist_items w WHERE w.product_id = p.id AND w.user_id = %[1]s),
		EXISTS (SELECT 1 FROM cart_items ci WHERE ci.product_id = p.id AND ci.user_id = %[1]s)
	FROM products p
	JOIN categories c ON c.id = p.category_id`

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{Category: &models.Category{}, Sizes: []models.Size{}}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.Discount,
		&p.DiscountAmount,
		&p.CategoryID,
		&p.Featured,
		&p.Color,
		&p.Description,
		&p.Inventory,
		&p.Image,
		&p.ImageID,
		&p.AverageRating,
		&p.NumOfReviews,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Category.ID,
		&p.Category.Name,
		&p.IsWishListed,
		&p.IsAddedToCart,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Create inserts a product with its sizes
func (r *ProductRepository) Create(ctx context.Context, p *models.Product, sizeIDs []uuid.UUID) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, name, price, discount, discount_amount, category_id, featured,
				color, description, inventory, image, image_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			p.ID, p.Name, p.Price, p.Discount, p.DiscountAmount, p.CategoryID, p.Featured,
			p.Color, p.Description, p.Inventory, p.Image, p.ImageID, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create product: %w", mapError(err))
		}
		return replaceSizes(ctx, tx, p.ID, sizeIDs)
	})
}

func replaceSizes(ctx context.Context, tx *sql.Tx, productID uuid.UUID, sizeIDs []uuid.UUID) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_sizes WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("failed to clear product sizes: %w", err)
	}
	if len(sizeIDs) == 0 {
		return nil
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO product_sizes (product_id, size_id)
		SELECT $1, s FROM unnest($2::uuid[]) AS s
		ON CONFLICT DO NOTHING`,
		productID, uuidArray(lo.Uniq(sizeIDs)))
	if err != nil {
		return fmt.Errorf("failed to set product sizes: %w", mapError(err))
	}
	return nil
}

// GetByID retrieves a product with its category and sizes. viewerID may be nil.
func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*models.Product, error) {
	query := fmt.Sprintf(productSelect, "$2") + ` WHERE p.id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, viewerID))
	if err != nil {
		return nil, fmt.Errorf("failed to get product %s: %w", id, mapError(err))
	}
	if err := r.attachSizes(ctx, []*models.Product{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// Update writes the product row and, when sizeIDs is non-nil, replaces its sizes
func (r *ProductRepository) Update(ctx context.Context, p *models.Product, sizeIDs []uuid.UUID) error {
	p.UpdatedAt = time.Now()

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE products SET name = $2, price = $3, discount = $4, discount_amount = $5,
				category_id = $6, featured = $7, color = $8, description = $9, inventory = $10,
				image = $11, image_id = $12, updated_at = $13
			WHERE id = $1`,
			p.ID, p.Name, p.Price, p.Discount, p.DiscountAmount, p.CategoryID, p.Featured,
			p.Color, p.Description, p.Inventory, p.Image, p.ImageID, p.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to update product: %w", mapError(err))
		}
		if err := requireAffected(result); err != nil {
			return err
		}
		if sizeIDs == nil {
			return nil
		}
		return replaceSizes(ctx, tx, p.ID, sizeIDs)
	})
}

// Delete removes a product; ErrReferenced when it appears on an order
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", mapError(err))
	}
	return requireAffected(result)
}

// List returns one page of products matching filters and the total match count
func (r *ProductRepository) List(ctx context.Context, filters models.ProductListFilters) ([]*models.Product, int, error) {
	var c conditions
	if filters.Search != "" {
		c.add(`LOWER(p.name) LIKE ?`, strings.ToLower(escapeLike(filters.Search))+"%")
	}
	if filters.CategoryID != nil {
		c.add(`p.category_id = ?`, *filters.CategoryID)
	}
	if filters.SizeID != nil {
		c.add(`EXISTS (SELECT 1 FROM product_sizes ps WHERE ps.product_id = p.id AND ps.size_id = ?)`, *filters.SizeID)
	}
	if filters.Featured {
		c.add(`p.featured`)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products p `+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get product count: %w", err)
	}

	page := models.NewPagination(filters.Page, models.ProductsPerPage)
	query := fmt.Sprintf(productSelect, c.next(filters.ViewerID)) +
		fmt.Sprintf(` %s ORDER BY %s LIMIT %s OFFSET %s`,
			c.where(), productOrderBy(filters), c.next(page.Take), c.next(page.Offset()))

	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	if err := r.attachSizes(ctx, products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func productOrderBy(filters models.ProductListFilters) string {
	var order []string
	if filters.PriceSort != nil {
		order = append(order, "p.price "+string(*filters.PriceSort))
	}
	switch filters.Sort {
	case models.ProductSortHighestRated:
		order = append(order, "p.average_rating DESC")
	case models.ProductSortLatest:
		order = append(order, "p.created_at DESC")
	case models.ProductSortOldest:
		order = append(order, "p.created_at ASC")
	case models.ProductSortNameAsc:
		order = append(order, "p.name ASC")
	case models.ProductSortNameDesc:
		order = append(order, "p.name DESC")
	default:
		order = append(order, "p.created_at DESC")
	}
	// stable paging
	order = append(order, "p.id")
	return strings.Join(order, ", ")
}

// attachSizes loads the sizes of every product in one query
func (r *ProductRepository) attachSizes(ctx context.Context, products []*models.Product) error {
	if len(products) == 0 {
		return nil
	}
	ids := lo.Map(products, func(p *models.Product, _ int) uuid.UUID { return p.ID })

	rows, err := r.db.QueryContext(ctx, `
		SELECT ps.product_id, s.id, s.value, s.created_at, s.updated_at
		FROM product_sizes ps
		JOIN sizes s ON s.id = ps.size_id
		WHERE ps.product_id = ANY($1::uuid[])
		ORDER BY s.value`, uuidArray(ids))
	if err != nil {
		return fmt.Errorf("failed to load product sizes: %w", err)
	}
	defer rows.Close()

	byProduct := make(map[uuid.UUID][]models.Size)
	for rows.Next() {
		var productID uuid.UUID
		var s models.Size
		if err := rows.Scan(&productID, &s.ID, &s.Value, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return fmt.Errorf("failed to scan product size: %w", err)
		}
		byProduct[productID] = append(byProduct[productID], s)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating product sizes: %w", err)
	}

	for _, p := range products {
		if sizes, ok := byProduct[p.ID]; ok {
			p.Sizes = sizes
		}
	}
	return nil
}

func (r *ProductRepository) AddToWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	return r.link(ctx, wishlistTable, userID, productID)
}

func (r *ProductRepository) RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) error {
	return r.unlink(ctx, wishlistTable, userID, productID)
}

func (r *ProductRepository) AddToCart(ctx context.Context, userID, productID uuid.UUID) error {
	return r.link(ctx, cartTable, userID, productID)
}

func (r *ProductRepository) RemoveFromCart(ctx context.Context, userID, productID uuid.UUID) error {
	return r.unlink(ctx, cartTable, userID, productID)
}

// link is idempotent; an unknown product yields ErrNotFound
func (r *ProductRepository) link(ctx context.Context, table string, userID, productID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (user_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, table),
		userID, productID)
	if err != nil {
		err = mapError(err)
		if errors.Is(err, models.ErrReferenced) {
			return models.ErrNotFound
		}
		return fmt.Errorf("failed to add product to %s: %w", table, err)
	}
	return nil
}

// unlink is idempotent; an unknown product yields ErrNotFound
func (r *ProductRepository) unlink(ctx context.Context, table string, userID, productID uuid.UUID) error {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return models.ErrNotFound
	}

	_, err := r.db.ExecContext(ctx, fmt.Sprintf(
		`DELETE FROM %s WHERE user_id = $1 AND product_id = $2`, table), userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove product from %s: %w", table, err)
	}
	return nil
}

// CartProducts returns the products currently in the user's cart
func (r *ProductRepository) CartProducts(ctx context.Context, userID uuid.UUID) ([]models.CartProduct, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.price, p.discount, p.discount_amount, p.color, p.inventory, p.image
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = $1
		ORDER BY ci.created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	defer rows.Close()

	cart := []models.CartProduct{}
	for rows.Next() {
		var p models.CartProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Discount, &p.DiscountAmount, &p.Color, &p.Inventory, &p.Image); err != nil {
			return nil, fmt.Errorf("failed to scan cart product: %w", err)
		}
		cart = append(cart, p)
	}
	return cart, rows.Err()
}

// Wishlist returns the products the user has wishlisted
func (r *ProductRepository) Wishlist(ctx context.Context, userID uuid.UUID) ([]*models.Product, error) {
	query := fmt.Sprintf(productSelect, "$1") + `
		JOIN wishlist_items wi ON wi.product_id = p.id AND wi.user_id = $1
		ORDER BY wi.created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}
	defer rows.Close()

	products := []*models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist: %w", err)
	}
	return products, r.attachSizes(ctx, products)
}
