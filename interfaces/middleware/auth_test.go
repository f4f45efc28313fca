package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"content-ops/domain/model"
	"content-ops/infrastructure/configuration"
	"content-ops/infrastructure/utils"
	"content-ops/interfaces/middleware"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetById(ctx context.Context, id int) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepo) GetByUserName(ctx context.Context, userName string) (model.User, error) {
	args := m.Called(ctx, userName)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepo) CreateUser(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func mintToken(t *testing.T, secret string) string {
	t.Helper()
	now := time.Now().UTC()
	token, err := utils.GenerateToken(map[string]interface{}{
		"iss":       "7",
		"user_name": "tulus",
		"name":      "Tulus",
		"iat":       now.Unix(),
		"exp":       now.Add(time.Hour).Unix(),
	}, secret)
	require.NoError(t, err)
	return token
}

func newAuthRouter(repo *MockUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/ping", middleware.Auth(repo), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"user_id": ctx.GetString("user_id")})
	})
	return router
}

func TestAuthAcceptsTokenSignedWithConfiguredSecret(t *testing.T) {
	prev := configuration.C.App.SecretKey
	configuration.C.App.SecretKey = "unit-secret"
	t.Cleanup(func() { configuration.C.App.SecretKey = prev })

	repo := &MockUserRepo{}
	repo.On("GetByUserName", mock.Anything, "tulus").
		Return(model.User{ID: 7, UserName: "tulus"}, nil).Once()

	router := newAuthRouter(repo)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, configuration.C.App.SecretKey))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user_id":"7"`)
	repo.AssertExpectations(t)
}

func TestAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	prev := configuration.C.App.SecretKey
	configuration.C.App.SecretKey = "unit-secret"
	t.Cleanup(func() { configuration.C.App.SecretKey = prev })

	repo := &MockUserRepo{}

	router := newAuthRouter(repo)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "some-other-secret"))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	repo.AssertNotCalled(t, "GetByUserName", mock.Anything, mock.Anything)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	router := newAuthRouter(&MockUserRepo{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
