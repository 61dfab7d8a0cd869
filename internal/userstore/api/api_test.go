package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microservices-demo/internal/userstore/api"
	"microservices-demo/internal/userstore/entity"
	"microservices-demo/internal/userstore/service"
)

type fakeUserRepo struct {
	users  map[int]entity.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]entity.User{}, nextID: 1}
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]entity.User, error) {
	users := []entity.User{}
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id int) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, entity.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = *user
	return user, nil
}

func newHandler() *api.UserHandler {
	return api.NewUserHandler(service.NewUserService(newFakeUserRepo()))
}

func doJSON(t *testing.T, h echo.HandlerFunc, method, target, body string, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := 0; i+1 < len(params); i += 2 {
		c.SetParamNames(params[i])
		c.SetParamValues(params[i+1])
	}
	require.NoError(t, h(c))
	return rec
}

func TestCreateUser_Created(t *testing.T) {
	h := newHandler()

	rec := doJSON(t, h.CreateUser, http.MethodPost, "/users",
		`{"firstName":"John","lastName":"Doe","email":"john@example.com"}`)

	assert.Equal(t, 201, rec.Code)

	var created entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "John", created.FirstName)
	assert.Equal(t, "john@example.com", created.Email)
}

func TestCreateUser_MissingField(t *testing.T) {
	h := newHandler()

	rec := doJSON(t, h.CreateUser, http.MethodPost, "/users",
		`{"firstName":"John","email":"john@example.com"}`)

	assert.Equal(t, 400, rec.Code)
}

func TestGetUserByID_NotFound(t *testing.T) {
	h := newHandler()

	rec := doJSON(t, h.GetUserByID, http.MethodGet, "/users/999", "", "id", "999")
	assert.Equal(t, 404, rec.Code)
}

func TestGetUserByID_InvalidID(t *testing.T) {
	h := newHandler()

	rec := doJSON(t, h.GetUserByID, http.MethodGet, "/users/abc", "", "id", "abc")
	assert.Equal(t, 400, rec.Code)
}

func TestListUsers_ReturnsArray(t *testing.T) {
	h := newHandler()

	rec := doJSON(t, h.CreateUser, http.MethodPost, "/users",
		`{"firstName":"John","lastName":"Doe","email":"john@example.com"}`)
	require.Equal(t, 201, rec.Code)

	rec = doJSON(t, h.ListUsers, http.MethodGet, "/users", "")
	assert.Equal(t, 200, rec.Code)

	var users []entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	assert.Len(t, users, 1)
}

func TestGetUserByID_RoundTrip(t *testing.T) {
	h := newHandler()

	rec := doJSON(t, h.CreateUser, http.MethodPost, "/users",
		`{"firstName":"Jane","lastName":"Doe","email":"jane@example.com"}`)
	require.Equal(t, 201, rec.Code)
	var created entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = doJSON(t, h.GetUserByID, http.MethodGet, "/users/1", "", "id", "1")
	assert.Equal(t, 200, rec.Code)

	var got entity.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, created, got)
}
