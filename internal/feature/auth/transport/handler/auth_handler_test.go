package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog_backend/internal/api"
	"blog_backend/internal/feature/auth/domain/entity"
	"blog_backend/internal/feature/auth/usecase"
)

// mockAuthUsecase はAuthUsecaseインターフェースのモック実装です。
type mockAuthUsecase struct {
	RegisterFunc     func(ctx context.Context, name, email, password string) (*entity.User, error)
	AuthenticateFunc func(ctx context.Context, email, password string) (*entity.User, error)
	StartSessionFunc func(ctx context.Context, user *entity.User, client usecase.ClientInfo) (string, *entity.Session, error)
	EndSessionFunc   func(ctx context.Context, token string) error

	ended []string
}

func (m *mockAuthUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return &entity.User{ID: 2, Name: name, Email: email}, nil
}

func (m *mockAuthUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, email, password)
	}
	return nil, usecase.ErrPasswordMismatch
}

func (m *mockAuthUsecase) StartSession(ctx context.Context, user *entity.User, client usecase.ClientInfo) (string, *entity.Session, error) {
	if m.StartSessionFunc != nil {
		return m.StartSessionFunc(ctx, user, client)
	}
	return "new-token", &entity.Session{ID: "sid", UserID: user.ID}, nil
}

func (m *mockAuthUsecase) EndSession(ctx context.Context, token string) error {
	m.ended = append(m.ended, token)
	if m.EndSessionFunc != nil {
		return m.EndSessionFunc(ctx, token)
	}
	return nil
}

var testCookie = CookieConfig{Name: "session", TTL: time.Hour}

func setupRouter(uc AuthUsecase) *gin.Engine {
	h := NewAuthHandler(uc, testCookie)
	r := gin.New()
	r.GET("/register", h.RegisterPage)
	r.POST("/register", h.Register)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cookieNamed(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) api.PageResponse {
	t.Helper()
	var page api.PageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	return page
}

func TestAuthHandler_Register(t *testing.T) {
	gin.SetMode(gin.TestMode)

	valid := url.Values{"name": {"Bob"}, "email": {"bob@example.com"}, "password": {"hunter2"}}

	tests := []struct {
		name             string
		form             url.Values
		registerFunc     func(ctx context.Context, name, email, password string) (*entity.User, error)
		expectedStatus   int
		expectedLocation string
		expectCookie     bool
	}{
		{
			name:             "success: registers and logs in",
			form:             valid,
			expectedStatus:   http.StatusFound,
			expectedLocation: "/",
			expectCookie:     true,
		},
		{
			name: "failure: duplicate email redirects to login",
			form: valid,
			registerFunc: func(context.Context, string, string, string) (*entity.User, error) {
				return nil, usecase.ErrEmailAlreadyExists
			},
			expectedStatus:   http.StatusFound,
			expectedLocation: "/login",
		},
		{
			name:           "failure: short password",
			form:           url.Values{"name": {"Bob"}, "email": {"bob@example.com"}, "password": {"abcd"}},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "failure: password longer than bcrypt accepts",
			form:           url.Values{"name": {"Bob"}, "email": {"bob@example.com"}, "password": {strings.Repeat("a", 73)}},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "failure: invalid email address",
			form:           url.Values{"name": {"Bob"}, "email": {"not-an-email"}, "password": {"hunter2"}},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "failure: store error",
			form: valid,
			registerFunc: func(context.Context, string, string, string) (*entity.User, error) {
				return nil, errors.New("db is down")
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAuthUsecase{RegisterFunc: tt.registerFunc}
			w := postForm(setupRouter(uc), "/register", tt.form)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
			session := cookieNamed(w, testCookie.Name)
			if tt.expectCookie {
				require.NotNil(t, session)
				assert.Equal(t, "new-token", session.Value)
				assert.True(t, session.HttpOnly)
				assert.Equal(t, http.SameSiteLaxMode, session.SameSite)
			} else {
				assert.Nil(t, session)
			}
		})
	}
}

// TestAuthHandler_Register_ValidationKeepsInput はバリデーション失敗時に入力値が保持されることを検証します。
func TestAuthHandler_Register_ValidationKeepsInput(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := postForm(setupRouter(&mockAuthUsecase{}), "/register",
		url.Values{"name": {"Bob"}, "email": {"bob@example.com"}, "password": {"abc"}})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	page := decodePage(t, w)
	assert.Equal(t, "register", page.Page)

	form := page.Data["form"].(map[string]any)
	assert.Equal(t, "Bob", form["name"])
	assert.Equal(t, "bob@example.com", form["email"])
	assert.Equal(t, "", form["password"])

	errs := page.Data["errors"].(map[string]any)
	assert.Equal(t, "Password must have at least 5 characters", errs["password"])
}

// TestAuthHandler_Register_PasswordTooLong は73文字のパスワードがusecaseに渡らず422で再表示されることを検証します。
func TestAuthHandler_Register_PasswordTooLong(t *testing.T) {
	gin.SetMode(gin.TestMode)

	called := false
	uc := &mockAuthUsecase{RegisterFunc: func(context.Context, string, string, string) (*entity.User, error) {
		called = true
		return nil, errors.New("unexpected call")
	}}
	w := postForm(setupRouter(uc), "/register",
		url.Values{"name": {"Long"}, "email": {"long@example.com"}, "password": {strings.Repeat("a", 73)}})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.False(t, called)
	page := decodePage(t, w)
	assert.Equal(t, "register", page.Page)
	errs := page.Data["errors"].(map[string]any)
	assert.Equal(t, "Password must have at most 72 characters", errs["password"])
}

func TestAuthHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	bob := &entity.User{ID: 2, Name: "Bob", Email: "bob@example.com"}
	valid := url.Values{"email": {"bob@example.com"}, "password": {"hunter2"}}

	tests := []struct {
		name             string
		form             url.Values
		authenticateFunc func(ctx context.Context, email, password string) (*entity.User, error)
		expectedStatus   int
		expectedLocation string
		expectedNotices  []string
	}{
		{
			name:             "success: user login",
			form:             valid,
			authenticateFunc: func(context.Context, string, string) (*entity.User, error) { return bob, nil },
			expectedStatus:   http.StatusFound,
			expectedLocation: "/",
		},
		{
			name:             "failure: unknown email",
			form:             valid,
			authenticateFunc: func(context.Context, string, string) (*entity.User, error) { return nil, usecase.ErrUnknownEmail },
			expectedStatus:   http.StatusUnauthorized,
			expectedNotices:  []string{NoticeUnknownUser},
		},
		{
			name:             "failure: wrong password",
			form:             valid,
			authenticateFunc: func(context.Context, string, string) (*entity.User, error) { return nil, usecase.ErrPasswordMismatch },
			expectedStatus:   http.StatusUnauthorized,
			expectedNotices:  []string{NoticeWrongPassword},
		},
		{
			name:           "failure: missing password",
			form:           url.Values{"email": {"bob@example.com"}},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:             "failure: store error is hidden",
			form:             valid,
			authenticateFunc: func(context.Context, string, string) (*entity.User, error) { return nil, errors.New("db is down") },
			expectedStatus:   http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAuthUsecase{AuthenticateFunc: tt.authenticateFunc}
			w := postForm(setupRouter(uc), "/login", tt.form)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedLocation, w.Header().Get("Location"))
			if tt.expectedNotices != nil {
				page := decodePage(t, w)
				assert.Equal(t, "login", page.Page)
				assert.Equal(t, tt.expectedNotices, page.Notices)
				assert.Equal(t, "", page.Data["form"].(map[string]any)["password"])
			}
			if tt.expectedStatus == http.StatusInternalServerError {
				assert.JSONEq(t, `{"error":"internal server error"}`, w.Body.String())
			}
		})
	}
}

// TestAuthHandler_Login_ReplacesPreviousSession は再ログイン時に以前のセッションが失効されることを検証します。
func TestAuthHandler_Login_ReplacesPreviousSession(t *testing.T) {
	gin.SetMode(gin.TestMode)

	uc := &mockAuthUsecase{AuthenticateFunc: func(context.Context, string, string) (*entity.User, error) {
		return &entity.User{ID: 2}, nil
	}}
	w := postForm(setupRouter(uc), "/login",
		url.Values{"email": {"bob@example.com"}, "password": {"hunter2"}},
		&http.Cookie{Name: testCookie.Name, Value: "old-token"})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, []string{"old-token"}, uc.ended)
	assert.Equal(t, "new-token", cookieNamed(w, testCookie.Name).Value)
}

func TestAuthHandler_StartSessionFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	uc := &mockAuthUsecase{
		AuthenticateFunc: func(context.Context, string, string) (*entity.User, error) { return &entity.User{ID: 2}, nil },
		StartSessionFunc: func(context.Context, *entity.User, usecase.ClientInfo) (string, *entity.Session, error) {
			return "", nil, errors.New("redis down")
		},
	}
	w := postForm(setupRouter(uc), "/login", url.Values{"email": {"bob@example.com"}, "password": {"hunter2"}})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Nil(t, cookieNamed(w, testCookie.Name))
}

func TestAuthHandler_Logout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		cookie    *http.Cookie
		wantEnded []string
	}{
		{"anonymous", nil, nil},
		{"logged in", &http.Cookie{Name: testCookie.Name, Value: "tok"}, []string{"tok"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockAuthUsecase{}
			req := httptest.NewRequest(http.MethodGet, "/logout", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := httptest.NewRecorder()
			setupRouter(uc).ServeHTTP(w, req)

			assert.Equal(t, http.StatusFound, w.Code)
			assert.Equal(t, "/", w.Header().Get("Location"))
			assert.Equal(t, tt.wantEnded, uc.ended)
			cleared := cookieNamed(w, testCookie.Name)
			require.NotNil(t, cleared)
			assert.Empty(t, cleared.Value)
			assert.Less(t, cleared.MaxAge, 0)
		})
	}
}

func TestAuthHandler_Pages(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, page := range []string{"register", "login"} {
		t.Run(page, func(t *testing.T) {
			w := httptest.NewRecorder()
			setupRouter(&mockAuthUsecase{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/"+page, nil))

			assert.Equal(t, http.StatusOK, w.Code)
			got := decodePage(t, w)
			assert.Equal(t, page, got.Page)
			assert.Nil(t, got.Viewer)
			assert.Equal(t, []string{}, got.Notices)
		})
	}
}
