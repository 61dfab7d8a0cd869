package repository

import (
	"context"
	"database/sql"
	"errors"

	"microservices-demo/internal/orderflow/entity"
	"microservices-demo/internal/orderflow/sharding"
)

// OrderRepository stores orders across one or more MySQL shards, routed by
// user ID. Multi-shard deployments must configure auto_increment_increment /
// auto_increment_offset so that order IDs stay unique across shards.
type OrderRepository struct {
	dbShards []*sql.DB
	router   *sharding.ShardRouter
}

func NewOrderRepository(dbShards []*sql.DB, router *sharding.ShardRouter) *OrderRepository {
	return &OrderRepository{dbShards, router}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	db := r.dbShards[r.router.GetShard(order.UserID)]

	query := `INSERT INTO orders (user_id, product_name, quantity, total_price, status, order_date) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := db.ExecContext(ctx, query, order.UserID, order.ProductName, order.Quantity, order.TotalPrice, order.Status, order.OrderDate)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	order.ID = int(id)
	return order, nil
}

// GetOrderByID does not know which user (and therefore which shard) an order
// belongs to, so it probes shards in sequence.
func (r *OrderRepository) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	query := `SELECT id, user_id, product_name, quantity, total_price, status, order_date FROM orders WHERE id = ?`

	for _, db := range r.dbShards {
		order := &entity.Order{}
		err := db.QueryRowContext(ctx, query, id).Scan(&order.ID, &order.UserID, &order.ProductName, &order.Quantity, &order.TotalPrice, &order.Status, &order.OrderDate)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				continue
			}
			return nil, err
		}
		return order, nil
	}

	return nil, entity.ErrOrderNotFound
}

func (r *OrderRepository) ListOrders(ctx context.Context) ([]entity.Order, error) {
	query := `SELECT id, user_id, product_name, quantity, total_price, status, order_date FROM orders`

	orders := []entity.Order{}
	for _, db := range r.dbShards {
		rows, err := db.QueryContext(ctx, query)
		if err != nil {
			return nil, err
		}

		shardOrders, err := scanOrders(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, shardOrders...)
	}

	return orders, nil
}

func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID int) ([]entity.Order, error) {
	db := r.dbShards[r.router.GetShard(userID)]

	query := `SELECT id, user_id, product_name, quantity, total_price, status, order_date FROM orders WHERE user_id = ?`
	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]entity.Order, error) {
	defer rows.Close()

	orders := []entity.Order{}
	for rows.Next() {
		var order entity.Order
		err := rows.Scan(&order.ID, &order.UserID, &order.ProductName, &order.Quantity, &order.TotalPrice, &order.Status, &order.OrderDate)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}
