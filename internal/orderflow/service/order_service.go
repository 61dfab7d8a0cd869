package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"microservices-demo/internal/orderflow/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

var validate = validator.New()

// UserLookup is the order workflow's view of the user store: a user, a
// definite not-found, or a lookup failure. The HTTP client implements it; tests
// substitute fakes.
type UserLookup interface {
	Lookup(ctx context.Context, userID int) (*entity.User, error)
}

// OrderRepository is what the workflow needs from order storage.
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error)
	GetOrderByID(ctx context.Context, id int) (*entity.Order, error)
	ListOrders(ctx context.Context) ([]entity.Order, error)
	ListOrdersByUser(ctx context.Context, userID int) ([]entity.Order, error)
}

// IdempotencyStore claims an idempotency key, returning false when the key
// was already used within the TTL.
type IdempotencyStore interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

const idempotentKeyTTL = 24 * time.Hour

// OrderService is a service that provides order-related operations.
type OrderService struct {
	orderRepo   OrderRepository
	users       UserLookup
	idemStore   IdempotencyStore // optional
	kafkaWriter *kafka.Writer    // optional
}

// NewOrderService creates a new instance of OrderService. idemStore and
// kafkaWriter may be nil, which disables request deduplication and event
// publishing respectively.
func NewOrderService(orderRepo OrderRepository, users UserLookup, idemStore IdempotencyStore, kafkaWriter *kafka.Writer) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		users:       users,
		idemStore:   idemStore,
		kafkaWriter: kafkaWriter,
	}
}

// CreateOrder runs the order validation workflow: validate the request, claim
// the idempotency key if one was supplied, confirm the referenced user exists
// via the user store, then persist with status PENDING. Nothing is persisted
// when the user lookup rejects. There is no compensation if the write fails
// after a successful validation; that is a known consistency gap of this
// two-service design.
func (s *OrderService) CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	if req.IdempotentKey != "" && s.idemStore != nil {
		claimed, err := s.idemStore.Claim(ctx, req.IdempotentKey, idempotentKeyTTL)
		if err != nil {
			logger.Error().Err(err).Msg("Error claiming idempotent key")
			return nil, err
		}
		if !claimed {
			return nil, entity.ErrDuplicateRequest
		}
	}

	if _, err := s.users.Lookup(ctx, req.UserID); err != nil {
		logger.Warn().Err(err).Msgf("Rejecting order for user %d", req.UserID)
		return nil, err
	}

	order := &entity.Order{
		UserID:      req.UserID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		TotalPrice:  req.TotalPrice,
		Status:      entity.StatusPending,
		OrderDate:   req.OrderDate,
	}
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}

	createdOrder, err := s.orderRepo.CreateOrder(ctx, order)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating order")
		return nil, err
	}

	s.publishOrderEvent(ctx, createdOrder)

	return createdOrder, nil
}

// GetOrderByID retrieves an order by ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting order by ID %d", id)
		return nil, err
	}

	return order, nil
}

// ListOrders returns all orders across shards.
func (s *OrderService) ListOrders(ctx context.Context) ([]entity.Order, error) {
	orders, err := s.orderRepo.ListOrders(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing orders")
		return nil, err
	}

	return orders, nil
}

// ListOrdersByUser returns the orders previously created for userID. An
// unknown user simply yields an empty list; no user lookup happens on reads.
func (s *OrderService) ListOrdersByUser(ctx context.Context, userID int) ([]entity.Order, error) {
	orders, err := s.orderRepo.ListOrdersByUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing orders for user %d", userID)
		return nil, err
	}

	return orders, nil
}

// publishOrderEvent emits an order-created event. The event is advisory: a
// publish failure is logged but does not fail the request.
func (s *OrderService) publishOrderEvent(ctx context.Context, order *entity.Order) {
	if s.kafkaWriter == nil {
		return
	}

	orderJSON, err := json.Marshal(order)
	if err != nil {
		logger.Error().Err(err).Msgf("Error marshalling order %d event", order.ID)
		return
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("order-created-%d", order.ID)),
		Value: orderJSON,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msgf("Error publishing event for order %d", order.ID)
	}
}
