package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microservices-demo/internal/orderflow/client"
	"microservices-demo/internal/orderflow/entity"
)

const testSecret = "test-secret"

func newClient(baseURL string) *client.UserClient {
	return client.NewUserClient(baseURL, testSecret, 2*time.Second, nil)
}

func TestLookup_Success(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		assert.Equal(t, "/internal/users/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":1,"firstName":"John","lastName":"Doe","email":"john@example.com"}`))
	}))
	defer srv.Close()

	user, err := newClient(srv.URL).Lookup(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, &entity.User{ID: 1, FirstName: "John", LastName: "Doe", Email: "john@example.com"}, user)

	// The call must carry a valid service token signed with the shared secret.
	require.True(t, strings.HasPrefix(authHeader, "Bearer "))
	claims := jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(strings.TrimPrefix(authHeader, "Bearer "), &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "order-service", claims.Subject)
}

func TestLookup_UserNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Lookup(context.Background(), 999)
	assert.ErrorIs(t, err, entity.ErrUserNotFound)
}

func TestLookup_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Lookup(context.Background(), 1)
	assert.ErrorIs(t, err, entity.ErrUserLookupFailed)
	assert.NotErrorIs(t, err, entity.ErrUserNotFound)
}

func TestLookup_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Lookup(context.Background(), 1)
	assert.ErrorIs(t, err, entity.ErrUserLookupFailed)
}

func TestLookup_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newClient(srv.URL).Lookup(context.Background(), 1)
	assert.ErrorIs(t, err, entity.ErrUserLookupFailed)
}

func TestLookup_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := client.NewUserClient(srv.URL, testSecret, 50*time.Millisecond, nil)
	_, err := c.Lookup(context.Background(), 1)
	assert.ErrorIs(t, err, entity.ErrUserLookupFailed)
}
