package entity

import (
	"errors"
	"time"
)

// StatusPending is the only status ever assigned: the order lifecycle here is
// a single transition, none -> PENDING.
const StatusPending = "PENDING"

var (
	ErrOrderNotFound = errors.New("order not found")
	ErrInvalidInput  = errors.New("invalid input")

	// ErrUserNotFound means the user store answered and the user does not
	// exist. ErrUserLookupFailed means existence could not be determined
	// (timeout, connection refused, malformed response). Both reject order
	// creation, but they are surfaced with different status codes.
	ErrUserNotFound     = errors.New("referenced user not found")
	ErrUserLookupFailed = errors.New("user lookup failed")

	ErrDuplicateRequest = errors.New("idempotent key already used")
)

type Order struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	TotalPrice  float64   `json:"totalPrice"`
	Status      string    `json:"status"`
	OrderDate   time.Time `json:"orderDate"`
}

// CreateOrderRequest is the POST /orders payload. OrderDate is optional and
// defaults to the persistence time. IdempotentKey comes from the
// Idempotent-Key header, never from the body.
type CreateOrderRequest struct {
	UserID        int       `json:"userId" validate:"required,gt=0"`
	ProductName   string    `json:"productName" validate:"required"`
	Quantity      int       `json:"quantity" validate:"required,gt=0"`
	TotalPrice    float64   `json:"totalPrice" validate:"gte=0"`
	OrderDate     time.Time `json:"orderDate"`
	IdempotentKey string    `json:"-"`
}

// User is the order service's view of a user store record. The reference is a
// weak one: only existence at creation time is checked, nothing enforces the
// user's continued existence afterwards.
type User struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

/*
Mysql Table

CREATE TABLE orders (
	id INT AUTO_INCREMENT PRIMARY KEY,
	user_id INT NOT NULL,
	product_name VARCHAR(255) NOT NULL,
	quantity INT NOT NULL,
	total_price DOUBLE NOT NULL,
	status VARCHAR(20) NOT NULL,
	order_date DATETIME NOT NULL
);
*/
