package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"ecommerce-platform/internal/models"
)

// OrderRepository handles order data operations
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

const orderColumns = `o.id, o.order_id, o.user_id, o.address_id, o.sub_total, o.total, o.discount,
	o.coupon_id, o.is_paid, o.paid_at, o.created_at, o.updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(
		&o.ID,
		&o.OrderID,
		&o.UserID,
		&o.AddressID,
		&o.SubTotal,
		&o.Total,
		&o.Discount,
		&o.CouponID,
		&o.IsPaid,
		&o.PaidAt,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// Create persists an unpaid order and snapshots its product ids in one transaction
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now()
	order.CreatedAt, order.UpdatedAt = now, now
	order.IsPaid = false

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO orders (id, order_id, user_id, address_id, sub_total, total, discount,
				coupon_id, is_paid, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10)`,
			order.ID, order.OrderID, order.UserID, order.AddressID, order.SubTotal, order.Total,
			order.Discount, order.CouponID, order.CreatedAt, order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create order: %w", mapError(err))
		}

		if len(order.ProductIDs) == 0 {
			return nil
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_products (order_id, product_id)
			SELECT $1, p FROM unnest($2::uuid[]) AS p
			ON CONFLICT DO NOTHING`,
			order.ID, uuidArray(lo.Uniq(order.ProductIDs)))
		if err != nil {
			return fmt.Errorf("failed to attach order products: %w", mapError(err))
		}
		return nil
	})
}

// GetByGatewayID retrieves an order by the id the payment gateway assigned
func (r *OrderRepository) GetByGatewayID(ctx context.Context, orderID string) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders o WHERE o.order_id = $1`, orderID))
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, mapError(err))
	}
	if err := r.attachProducts(ctx, []*models.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// CompletePayment marks the order paid and applies every side effect of the payment
// atomically: the paid products leave the cart, the coupon is redeemed, inventory is
// taken and an order.paid event is queued. Nothing is written if any step fails.
func (r *OrderRepository) CompletePayment(ctx context.Context, order *models.Order, paymentID string, paidAt time.Time) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE orders SET is_paid = TRUE, paid_at = $2, updated_at = $2
			WHERE order_id = $1 AND NOT is_paid`,
			order.OrderID, paidAt)
		if err != nil {
			return fmt.Errorf("failed to mark order paid: %w", err)
		}
		if n, err := result.RowsAffected(); err != nil {
			return fmt.Errorf("failed to get rows affected: %w", err)
		} else if n == 0 {
			return models.ErrAlreadyPaid
		}

		if len(order.ProductIDs) > 0 {
			_, err = tx.ExecContext(ctx,
				`DELETE FROM cart_items WHERE user_id = $1 AND product_id = ANY($2::uuid[])`,
				order.UserID, uuidArray(order.ProductIDs))
			if err != nil {
				return fmt.Errorf("failed to clear cart: %w", err)
			}
		}

		if order.CouponID != nil {
			result, err = tx.ExecContext(ctx, `
				UPDATE coupons SET total_redemptions = total_redemptions + 1, updated_at = $2
				WHERE id = $1 AND total_redemptions < max_redemptions`,
				*order.CouponID, paidAt)
			if err != nil {
				return fmt.Errorf("failed to redeem coupon: %w", err)
			}
			if n, err := result.RowsAffected(); err != nil {
				return fmt.Errorf("failed to get rows affected: %w", err)
			} else if n == 0 {
				return models.ErrRedemptionLimit
			}
		}

		if len(order.ProductIDs) > 0 {
			ids := lo.Uniq(order.ProductIDs)
			result, err = tx.ExecContext(ctx, `
				UPDATE products SET inventory = inventory - 1, updated_at = $2
				WHERE id = ANY($1::uuid[]) AND inventory > 0`,
				uuidArray(ids), paidAt)
			if err != nil {
				return fmt.Errorf("failed to take inventory: %w", err)
			}
			if n, err := result.RowsAffected(); err != nil {
				return fmt.Errorf("failed to get rows affected: %w", err)
			} else if n != int64(len(ids)) {
				return models.ErrInsufficientInventory
			}
		}

		payload, err := json.Marshal(models.OrderPaidEvent{
			OrderID:    order.OrderID,
			PaymentID:  paymentID,
			UserID:     order.UserID,
			Total:      order.Total,
			CouponID:   order.CouponID,
			ProductIDs: order.ProductIDs,
			PaidAt:     paidAt,
		})
		if err != nil {
			return fmt.Errorf("failed to encode order event: %w", err)
		}
		if err := insertOutboxEvent(ctx, tx, order.OrderID, models.EventOrderPaid, payload); err != nil {
			return err
		}

		order.IsPaid = true
		order.PaidAt = &paidAt
		return nil
	})
}

// List returns one page of orders matching filters and the total match count
func (r *OrderRepository) List(ctx context.Context, filters models.OrderListFilters) ([]*models.Order, int, error) {
	var c conditions
	if filters.UserID != nil {
		c.add(`o.user_id = ?`, *filters.UserID)
	}
	if filters.IsPaid != nil {
		c.add(`o.is_paid = ?`, *filters.IsPaid)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders o `+c.where(), c.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to get order count: %w", err)
	}

	orderBy := ""
	if filters.PriceSort != nil {
		orderBy = "o.total " + string(*filters.PriceSort) + ", "
	}
	sort := filters.Sort
	if sort == "" {
		sort = models.SortDesc
	}
	orderBy += "o.created_at " + string(sort) + ", o.id"

	page := models.NewPagination(filters.Page, models.OrdersPerPage)
	query := fmt.Sprintf(`SELECT %s FROM orders o %s ORDER BY %s LIMIT %s OFFSET %s`,
		orderColumns, c.where(), orderBy, c.next(page.Take), c.next(page.Offset()))

	rows, err := r.db.QueryContext(ctx, query, c.args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := r.attachProducts(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) attachProducts(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := lo.Map(orders, func(o *models.Order, _ int) uuid.UUID { return o.ID })

	rows, err := r.db.QueryContext(ctx, `
		SELECT op.order_id, p.id, p.name, p.price, p.color, p.image
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = ANY($1::uuid[])
		ORDER BY p.name`, uuidArray(ids))
	if err != nil {
		return fmt.Errorf("failed to load order products: %w", err)
	}
	defer rows.Close()

	byOrder := make(map[uuid.UUID][]models.OrderProduct)
	for rows.Next() {
		var orderID uuid.UUID
		var p models.OrderProduct
		if err := rows.Scan(&orderID, &p.ID, &p.Name, &p.Price, &p.Color, &p.Image); err != nil {
			return fmt.Errorf("failed to scan order product: %w", err)
		}
		byOrder[orderID] = append(byOrder[orderID], p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating order products: %w", err)
	}

	for _, o := range orders {
		o.Products = byOrder[o.ID]
		o.ProductIDs = lo.Map(o.Products, func(p models.OrderProduct, _ int) uuid.UUID { return p.ID })
	}
	return nil
}
