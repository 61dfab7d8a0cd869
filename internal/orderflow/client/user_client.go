package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"microservices-demo/internal/orderflow/entity"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const userCacheTTL = 5 * time.Minute

// UserClient looks up users in the user store over its internal HTTP route.
// A 404 means the user verifiably does not exist; anything else that keeps us
// from a decodable 200 (transport error, timeout, unexpected status, garbage
// body) is reported as entity.ErrUserLookupFailed. No retries are performed.
type UserClient struct {
	baseURL    string
	secret     []byte
	httpClient *http.Client
	rdb        *redis.Client // optional; positive lookups are cached when set
}

func NewUserClient(baseURL, secret string, timeout time.Duration, rdb *redis.Client) *UserClient {
	return &UserClient{
		baseURL:    baseURL,
		secret:     []byte(secret),
		httpClient: &http.Client{Timeout: timeout},
		rdb:        rdb,
	}
}

func (c *UserClient) Lookup(ctx context.Context, userID int) (*entity.User, error) {
	if user := c.cachedUser(ctx, userID); user != nil {
		return user, nil
	}

	token, err := c.serviceToken()
	if err != nil {
		return nil, fmt.Errorf("%w: signing service token: %v", entity.ErrUserLookupFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUserLookupFailed, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrUserLookupFailed, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, entity.ErrUserNotFound
	default:
		return nil, fmt.Errorf("%w: unexpected status %d", entity.ErrUserLookupFailed, resp.StatusCode)
	}

	var user entity.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", entity.ErrUserLookupFailed, err)
	}

	c.cacheUser(ctx, &user)
	return &user, nil
}

// serviceToken signs a short-lived HS256 token the user store's internal
// route accepts. The secret is shared between the two services.
func (c *UserClient) serviceToken() (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   "order-service",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tkn.SignedString(c.secret)
}

func (c *UserClient) cachedUser(ctx context.Context, userID int) *entity.User {
	if c.rdb == nil {
		return nil
	}

	key := fmt.Sprintf("user:%d", userID)
	cached, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Error().Err(err).Msgf("Error getting user %d from cache", userID)
		}
		return nil
	}

	var user entity.User
	if err := json.Unmarshal([]byte(cached), &user); err != nil {
		logger.Error().Err(err).Msgf("Error unmarshalling cached user %d", userID)
		return nil
	}

	return &user
}

func (c *UserClient) cacheUser(ctx context.Context, user *entity.User) {
	if c.rdb == nil {
		return
	}

	payload, err := json.Marshal(user)
	if err != nil {
		return
	}

	key := fmt.Sprintf("user:%d", user.ID)
	if err := c.rdb.Set(ctx, key, payload, userCacheTTL).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error setting user %d in cache", user.ID)
	}
}
