package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/daspi/bookshop/internal/middleware"
	"github.com/daspi/bookshop/internal/models"
	"github.com/daspi/bookshop/internal/repo"
	"github.com/daspi/bookshop/internal/service"
	"github.com/daspi/bookshop/pkg/booksclient"
)

var testSecret = []byte("test-secret")

type testServer struct {
	echo     *echo.Echo
	vouchers *service.VoucherService
}

// newTestServer wires the full router over a throwaway database. Kafka
// and the search index stay disabled; the catalog proxy points at
// vendorURL (a closed port unless a test stands up a stub vendor).
func newTestServer(t *testing.T, vendorURL string) *testServer {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "bookshop_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Cart{}, &models.CartItem{}, &models.Voucher{}))

	r := &repo.GormRepo{DB: db}
	auth := &service.AuthService{Repo: r, JWTSecret: testSecret}
	vouchers := &service.VoucherService{Repo: r}

	if vendorURL == "" {
		vendorURL = "http://127.0.0.1:1"
	}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: auth},
		CartHandler:    &CartHTTP{Svc: &service.CartService{Repo: r}},
		VoucherHandler: &VoucherHTTP{Svc: vouchers},
		BooksHandler:   &BooksHTTP{Books: booksclient.New(vendorURL, "")},
		Session:        middleware.NewSessionMiddleware(testSecret, auth),
	})

	return &testServer{echo: e, vouchers: vouchers}
}

type reply struct {
	Status  int
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Count   *int            `json:"count"`
}

func (ts *testServer) request(t *testing.T, method, path, token string, body interface{}) reply {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.echo.ServeHTTP(rec, req)

	var out reply
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	out.Status = rec.Code
	return out
}

func (r reply) decode(t *testing.T, out interface{}) {
	t.Helper()
	require.NotNil(t, r.Data)
	require.NoError(t, json.Unmarshal(r.Data, out))
}

func (ts *testServer) register(t *testing.T, email string) (userID, token string) {
	t.Helper()

	resp := ts.request(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"firstName":     "Jane",
		"lastName":      "Reader",
		"email":         email,
		"password":      "Secret123",
		"contactNumber": "0123456789",
		"address":       "1 Library Lane",
	})
	require.Equal(t, http.StatusCreated, resp.Status)
	require.True(t, resp.Success)

	var profile struct {
		UserID string `json:"userId"`
		Token  string `json:"token"`
	}
	resp.decode(t, &profile)
	require.NotEmpty(t, profile.Token)
	return profile.UserID, profile.Token
}
