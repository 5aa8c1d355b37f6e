package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"nutritrack-server/internal/auth"
	apphttp "nutritrack-server/internal/http"
	"nutritrack-server/internal/repository/sqlite"
	"nutritrack-server/internal/service"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := sqlite.NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))

	tokens, err := auth.NewTokenManager("api-test-secret", "HS256", time.Hour)
	require.NoError(t, err)

	router := gin.New()
	apphttp.NewHandler(service.NewUserService(repo, tokens)).RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func decodeBody(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &out))
	return out
}

func TestRegisterLoginAndCurrentUser(t *testing.T) {
	router := newRouter(t)

	res := doJSON(t, router, http.MethodPost, "/user/", gin.H{
		"name":     "Ana",
		"email":    "ana@x.com",
		"password": "pw123",
	}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	created := decodeBody(t, res)
	require.NotEmpty(t, created["id"])
	require.NotEmpty(t, created["created_at"])
	require.NotEmpty(t, created["updated_at"])
	require.Equal(t, "ana@x.com", created["email"])
	_, leaked := created["password"]
	require.False(t, leaked, "password must never be serialized")

	res = doJSON(t, router, http.MethodPost, "/user/login", gin.H{
		"email":    "ana@x.com",
		"password": "pw123",
	}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	login := decodeBody(t, res)
	token, _ := login["access_token"].(string)
	require.NotEmpty(t, token)
	require.Equal(t, "bearer", login["token_type"])

	res = doJSON(t, router, http.MethodGet, "/user/", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	me := decodeBody(t, res)
	require.Equal(t, created["id"], me["id"])
	require.Equal(t, "ana@x.com", me["email"])
}

func TestRegister_DuplicateEmail(t *testing.T) {
	router := newRouter(t)

	body := gin.H{"name": "Ana", "email": "dup@x.com", "password": "pw123"}
	res := doJSON(t, router, http.MethodPost, "/user/", body, nil)
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(t, router, http.MethodPost, "/user/", body, nil)
	require.Equal(t, http.StatusConflict, res.Code)
}

func TestRegister_InvalidBody(t *testing.T) {
	router := newRouter(t)

	res := doJSON(t, router, http.MethodPost, "/user/", gin.H{"email": "not-an-email", "password": "pw"}, nil)
	require.Equal(t, http.StatusBadRequest, res.Code)

	res = doJSON(t, router, http.MethodPost, "/user/", gin.H{"email": "a@b.com"}, nil)
	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestLogin_Failures(t *testing.T) {
	router := newRouter(t)

	res := doJSON(t, router, http.MethodPost, "/user/", gin.H{"email": "ana@x.com", "password": "pw123"}, nil)
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(t, router, http.MethodPost, "/user/login", gin.H{"email": "missing@x.com", "password": "pw123"}, nil)
	require.Equal(t, http.StatusNotFound, res.Code)

	res = doJSON(t, router, http.MethodPost, "/user/login", gin.H{"email": "ana@x.com", "password": "wrong"}, nil)
	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestAuthForm(t *testing.T) {
	router := newRouter(t)

	res := doJSON(t, router, http.MethodPost, "/user/", gin.H{"email": "form@x.com", "password": "pw123"}, nil)
	require.Equal(t, http.StatusOK, res.Code)

	form := url.Values{}
	form.Set("username", "form@x.com")
	form.Set("password", "pw123")

	req := httptest.NewRequest(http.MethodPost, "/user/auth", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.NotEmpty(t, body["access_token"])
	require.Equal(t, "bearer", body["token_type"])
}

func TestCurrentUser_Unauthorized(t *testing.T) {
	router := newRouter(t)

	res := doJSON(t, router, http.MethodGet, "/user/", nil, nil)
	require.Equal(t, http.StatusUnauthorized, res.Code)

	res = doJSON(t, router, http.MethodGet, "/user/", nil, map[string]string{
		"Authorization": "Bearer garbage",
	})
	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestCurrentUser_DeletedAccount(t *testing.T) {
	router := newRouter(t)

	res := doJSON(t, router, http.MethodPost, "/user/", gin.H{"email": "gone@x.com", "password": "pw123"}, nil)
	require.Equal(t, http.StatusOK, res.Code)
	id := decodeBody(t, res)["id"].(string)

	res = doJSON(t, router, http.MethodPost, "/user/login", gin.H{"email": "gone@x.com", "password": "pw123"}, nil)
	require.Equal(t, http.StatusOK, res.Code)
	token := decodeBody(t, res)["access_token"].(string)

	res = doJSON(t, router, http.MethodDelete, "/user/"+id, nil, nil)
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(t, router, http.MethodGet, "/user/", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusUnauthorized, res.Code)
}

func TestGetListAndDelete(t *testing.T) {
	router := newRouter(t)

	res := doJSON(t, router, http.MethodGet, "/user/all", nil, nil)
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, "[]", strings.TrimSpace(res.Body.String()))

	res = doJSON(t, router, http.MethodPost, "/user/", gin.H{"email": "a@x.com", "password": "pw123"}, nil)
	require.Equal(t, http.StatusOK, res.Code)
	id := decodeBody(t, res)["id"].(string)

	res = doJSON(t, router, http.MethodGet, "/user/"+id, nil, nil)
	require.Equal(t, http.StatusOK, res.Code)
	require.Equal(t, id, decodeBody(t, res)["id"])

	res = doJSON(t, router, http.MethodGet, "/user/nope", nil, nil)
	require.Equal(t, http.StatusNotFound, res.Code)

	res = doJSON(t, router, http.MethodDelete, "/user/nope", nil, nil)
	require.Equal(t, http.StatusNotFound, res.Code)

	res = doJSON(t, router, http.MethodDelete, "/user/"+id, nil, nil)
	require.Equal(t, http.StatusOK, res.Code)

	res = doJSON(t, router, http.MethodGet, "/user/"+id, nil, nil)
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestRegister_ProfileFields(t *testing.T) {
	router := newRouter(t)

	res := doJSON(t, router, http.MethodPost, "/user/", gin.H{
		"name":       "Ana",
		"gender":     "F",
		"birth_date": "1990-05-01T00:00:00Z",
		"state":      "SP",
		"city":       "Campinas",
		"cep":        "13000-000",
		"complement": "apto 12",
		"email":      "profile@x.com",
		"password":   "pw123",
	}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	body := decodeBody(t, res)
	require.Equal(t, "F", body["gender"])
	require.Equal(t, "1990-05-01T00:00:00Z", body["birth_date"])
	require.Equal(t, "SP", body["state"])

	res = doJSON(t, router, http.MethodPost, "/user/", gin.H{
		"gender":   "X",
		"email":    "badgender@x.com",
		"password": "pw123",
	}, nil)
	require.Equal(t, http.StatusBadRequest, res.Code)
}
