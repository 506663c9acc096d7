package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/louisbranch/contactbook/internal/services/contacts/auth"
	"github.com/louisbranch/contactbook/internal/services/contacts/cache"
	"github.com/louisbranch/contactbook/internal/services/contacts/ratelimit"
	"github.com/louisbranch/contactbook/internal/services/contacts/storage/sqlstore"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type confirmation struct {
	email    string
	username string
	baseURL  string
}

type recordingConfirmer struct {
	mu   sync.Mutex
	sent []confirmation
}

func (r *recordingConfirmer) SendConfirmation(_ context.Context, email string, username string, baseURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, confirmation{email: email, username: username, baseURL: baseURL})
	return nil
}

func (r *recordingConfirmer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

type fakeUploader struct {
	url   string
	bytes int
}

func (f *fakeUploader) Upload(_ context.Context, email string, image io.Reader) (string, error) {
	data, err := io.ReadAll(image)
	if err != nil {
		return "", err
	}
	f.bytes = len(data)
	return f.url + "/" + email, nil
}

type testAPI struct {
	handler   http.Handler
	store     *sqlstore.Store
	tokens    *auth.Tokens
	cache     *cache.Memory
	confirmer *recordingConfirmer
}

func newTestAPI(t *testing.T, configure func(*Options)) *testAPI {
	t.Helper()

	store, err := sqlstore.Open(context.Background(), filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	// A frozen clock issues every token within the same second.
	issuedAt := time.Now().Truncate(time.Second)
	tokens, err := auth.NewTokens(auth.TokenConfig{
		Secret:     "test-secret",
		Algorithm:  "HS256",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		EmailTTL:   24 * time.Hour,
		Now:        func() time.Time { return issuedAt },
	})
	require.NoError(t, err)

	api := &testAPI{
		store:     store,
		tokens:    tokens,
		cache:     cache.NewMemory(),
		confirmer: &recordingConfirmer{},
	}
	opts := Options{
		Store:     store,
		Tokens:    tokens,
		Cache:     api.cache,
		Confirmer: api.confirmer,
		Now:       func() time.Time { return testNow },
	}
	if configure != nil {
		configure(&opts)
	}
	handler, err := NewHandler(opts)
	require.NoError(t, err)
	api.handler = handler
	return api
}

func (a *testAPI) do(t *testing.T, method string, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) doJSON(t *testing.T, method string, target string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	headers := map[string]string{"Content-Type": "application/json"}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return a.do(t, method, target, body, headers)
}

func (a *testAPI) login(t *testing.T, email string, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	return a.do(t, http.MethodPost, "/api/auth/login", strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
}

// register signs up, confirms, and logs in a user, returning its tokens.
func (a *testAPI) register(t *testing.T, username string, email string) TokenResponse {
	t.Helper()
	rec := a.doJSON(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NoError(t, a.store.ConfirmEmail(context.Background(), email))

	rec = a.login(t, email, "secret123")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tokens TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tokens))
	return tokens
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &value), rec.Body.String())
	return value
}

func requireDetail(t *testing.T, rec *httptest.ResponseRecorder, status int, detail string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	require.Equal(t, detail, decode[map[string]string](t, rec)["detail"])
}

func TestNewHandlerRequiresCollaborators(t *testing.T) {
	_, err := NewHandler(Options{})
	require.Error(t, err)
}

func TestRootAndHealth(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Welcome to the contacts API!", decode[MessageResponse](t, rec).Message)

	rec = api.do(t, http.MethodGet, "/api/healthchecker", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Database connection is healthy!", decode[MessageResponse](t, rec).Message)

	require.NoError(t, api.store.Close())
	rec = api.do(t, http.MethodGet, "/api/healthchecker", nil, nil)
	requireDetail(t, rec, http.StatusInternalServerError, "Error connecting to the database")
}

func TestSignup(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.doJSON(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "Alice@Example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[UserResponse](t, rec)
	require.Equal(t, "alice@example.com", created.Email)
	require.Contains(t, created.Avatar, "gravatar.com/avatar/")
	require.NotZero(t, created.ID)

	require.Equal(t, 1, api.confirmer.count())
	require.Equal(t, "http://example.com/", api.confirmer.sent[0].baseURL)

	rec = api.doJSON(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "secret123",
	}, "")
	requireDetail(t, rec, http.StatusConflict, "Account already exists")

	rec = api.doJSON(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "bob",
		"email":    "not-an-email",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.do(t, http.MethodPost, "/api/auth/signup", strings.NewReader("{"), nil)
	requireDetail(t, rec, http.StatusUnprocessableEntity, "Invalid request body")
}

func TestSignupRejectsPasswordBeyondBcryptLimit(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.doJSON(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": strings.Repeat("p", 80),
	}, "")
	requireDetail(t, rec, http.StatusUnprocessableEntity, "password must be at most 72 bytes")
	require.Zero(t, api.confirmer.count())

	_, err := api.store.GetUserByEmail(context.Background(), "alice@example.com")
	require.Error(t, err)
}

func TestLogin(t *testing.T) {
	api := newTestAPI(t, nil)

	requireDetail(t, api.login(t, "ghost@example.com", "secret123"), http.StatusUnauthorized, "Invalid email")

	rec := api.doJSON(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	requireDetail(t, api.login(t, "alice@example.com", "secret123"), http.StatusUnauthorized, "Email not confirmed")

	require.NoError(t, api.store.ConfirmEmail(context.Background(), "alice@example.com"))
	requireDetail(t, api.login(t, "alice@example.com", "wrong-pass"), http.StatusUnauthorized, "Invalid password")

	rec = api.login(t, "alice@example.com", "secret123")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tokens := decode[TokenResponse](t, rec)
	require.Equal(t, "bearer", tokens.TokenType)
	require.NotEmpty(t, tokens.AccessToken)

	stored, err := api.store.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, tokens.RefreshToken, stored.RefreshToken)

	rec = api.do(t, http.MethodPost, "/api/auth/login", strings.NewReader(""),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRefreshToken(t *testing.T) {
	api := newTestAPI(t, nil)
	first := api.register(t, "alice", "alice@example.com")

	rec := api.doJSON(t, http.MethodGet, "/api/auth/refresh_token", nil, first.AccessToken)
	requireDetail(t, rec, http.StatusUnauthorized, "Invalid scope for token")

	rec = api.doJSON(t, http.MethodGet, "/api/auth/refresh_token", nil, first.RefreshToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	second := decode[TokenResponse](t, rec)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken, "rotation within one second must still change the token")
	require.NotEqual(t, first.AccessToken, second.AccessToken)

	// Replaying the rotated token revokes the session entirely.
	rec = api.doJSON(t, http.MethodGet, "/api/auth/refresh_token", nil, first.RefreshToken)
	requireDetail(t, rec, http.StatusUnauthorized, "Invalid refresh token")

	stored, err := api.store.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Empty(t, stored.RefreshToken)

	rec = api.doJSON(t, http.MethodGet, "/api/auth/refresh_token", nil, second.RefreshToken)
	requireDetail(t, rec, http.StatusUnauthorized, "Invalid refresh token")

	rec = api.do(t, http.MethodGet, "/api/auth/refresh_token", nil, nil)
	requireDetail(t, rec, http.StatusUnauthorized, "Not authenticated")
}

func TestConfirmEmail(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.doJSON(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	token, err := api.tokens.EmailToken("alice@example.com")
	require.NoError(t, err)

	rec = api.do(t, http.MethodGet, "/api/auth/confirmed_email/"+token, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Email confirmed", decode[MessageResponse](t, rec).Message)

	rec = api.do(t, http.MethodGet, "/api/auth/confirmed_email/"+token, nil, nil)
	require.Equal(t, "Your email is already confirmed", decode[MessageResponse](t, rec).Message)

	rec = api.do(t, http.MethodGet, "/api/auth/confirmed_email/garbage", nil, nil)
	requireDetail(t, rec, http.StatusUnprocessableEntity, "Invalid token for email verification")

	ghost, err := api.tokens.EmailToken("ghost@example.com")
	require.NoError(t, err)
	rec = api.do(t, http.MethodGet, "/api/auth/confirmed_email/"+ghost, nil, nil)
	requireDetail(t, rec, http.StatusBadRequest, "Verification error")
}

func TestRequestEmail(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.doJSON(t, http.MethodPost, "/api/auth/request_email", map[string]string{"email": "ghost@example.com"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Check your email for confirmation.", decode[MessageResponse](t, rec).Message)
	require.Equal(t, 0, api.confirmer.count())

	rec = api.doJSON(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.doJSON(t, http.MethodPost, "/api/auth/request_email", map[string]string{"email": "alice@example.com"}, "")
	require.Equal(t, "Check your email for confirmation.", decode[MessageResponse](t, rec).Message)
	require.Equal(t, 2, api.confirmer.count())

	require.NoError(t, api.store.ConfirmEmail(context.Background(), "alice@example.com"))
	rec = api.doJSON(t, http.MethodPost, "/api/auth/request_email", map[string]string{"email": "alice@example.com"}, "")
	require.Equal(t, "Your email is already confirmed", decode[MessageResponse](t, rec).Message)
	require.Equal(t, 2, api.confirmer.count())
}

func TestContactsRequireAuthentication(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, http.MethodGet, "/api/contacts", nil, nil)
	requireDetail(t, rec, http.StatusUnauthorized, "Not authenticated")
	require.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))

	rec = api.doJSON(t, http.MethodGet, "/api/contacts", nil, "not-a-token")
	requireDetail(t, rec, http.StatusUnauthorized, "Could not validate credentials")
}

func TestContactCRUD(t *testing.T) {
	api := newTestAPI(t, nil)
	tokens := api.register(t, "alice", "alice@example.com")
	token := tokens.AccessToken

	payload := map[string]any{
		"first_name":   "Ada",
		"last_name":    "Lovelace",
		"email":        "ada@example.com",
		"phone_number": "+44 20 1234",
		"birthday":     "10.12.1815",
	}
	rec := api.doJSON(t, http.MethodPost, "/api/contacts", payload, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[ContactResponse](t, rec)
	require.Equal(t, "1815-12-10", created.Birthday)
	require.Nil(t, created.AdditionalData)
	require.NotNil(t, created.User)
	require.Equal(t, "alice@example.com", created.User.Email)

	rec = api.doJSON(t, http.MethodPost, "/api/contacts/", payload, token)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = api.doJSON(t, http.MethodGet, "/api/contacts", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[[]ContactResponse](t, rec), 1)

	target := "/api/contacts/" + itoa(created.ID)
	rec = api.doJSON(t, http.MethodGet, target, nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Ada", decode[ContactResponse](t, rec).FirstName)

	payload["first_name"] = "Augusta"
	payload["additional_data"] = "mathematician"
	payload["completed"] = true
	rec = api.doJSON(t, http.MethodPut, target, payload, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[ContactResponse](t, rec)
	require.Equal(t, "Augusta", updated.FirstName)
	require.NotNil(t, updated.AdditionalData)
	require.Equal(t, "mathematician", *updated.AdditionalData)

	rec = api.doJSON(t, http.MethodPut, "/api/contacts/999", payload, token)
	requireDetail(t, rec, http.StatusNotFound, "Contact not found")

	rec = api.doJSON(t, http.MethodDelete, target, nil, token)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec = api.doJSON(t, http.MethodDelete, target, nil, token)
	requireDetail(t, rec, http.StatusNotFound, "Contact not found")
	rec = api.doJSON(t, http.MethodGet, target, nil, token)
	requireDetail(t, rec, http.StatusNotFound, "Contact not found")
}

func TestContactValidation(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register(t, "alice", "alice@example.com").AccessToken

	rec := api.doJSON(t, http.MethodGet, "/api/contacts/0", nil, token)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	rec = api.doJSON(t, http.MethodGet, "/api/contacts/abc", nil, token)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	for _, query := range []string{"limit=5", "limit=501", "offset=-1", "limit=ten"} {
		rec = api.doJSON(t, http.MethodGet, "/api/contacts?"+query, nil, token)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, query)
	}
	for _, query := range []string{"days=0", "days=366"} {
		rec = api.doJSON(t, http.MethodGet, "/api/contacts/birthdays?"+query, nil, token)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, query)
	}

	rec = api.doJSON(t, http.MethodPost, "/api/contacts", map[string]any{
		"first_name":   "Future",
		"last_name":    "Person",
		"email":        "future@example.com",
		"phone_number": "123",
		"birthday":     "2030-01-01",
	}, token)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = api.doJSON(t, http.MethodPost, "/api/contacts", map[string]any{
		"last_name":    "Person",
		"email":        "nobody@example.com",
		"phone_number": "123",
		"birthday":     "2000-01-01",
	}, token)
	requireDetail(t, rec, http.StatusUnprocessableEntity, "first_name is required")
}

func TestContactsAreOwnerScoped(t *testing.T) {
	api := newTestAPI(t, nil)
	alice := api.register(t, "alice", "alice@example.com").AccessToken
	bob := api.register(t, "bob", "bob@example.com").AccessToken

	rec := api.doJSON(t, http.MethodPost, "/api/contacts", map[string]any{
		"first_name":   "Ada",
		"last_name":    "Lovelace",
		"email":        "ada@example.com",
		"phone_number": "1",
		"birthday":     "1815-12-10",
	}, alice)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[ContactResponse](t, rec).ID

	rec = api.doJSON(t, http.MethodGet, "/api/contacts/"+itoa(id), nil, bob)
	require.Equal(t, http.StatusNotFound, rec.Code)
	rec = api.doJSON(t, http.MethodGet, "/api/contacts", nil, bob)
	require.Empty(t, decode[[]ContactResponse](t, rec))
}

func TestUpcomingBirthdays(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register(t, "alice", "alice@example.com").AccessToken

	for i, c := range []struct{ first, birthday string }{
		{"Soon", "1990-03-03"},
		{"Today", "1985-03-01"},
		{"Later", "1980-04-15"},
	} {
		rec := api.doJSON(t, http.MethodPost, "/api/contacts", map[string]any{
			"first_name":   c.first,
			"last_name":    "Test",
			"email":        strings.ToLower(c.first) + "@example.com",
			"phone_number": itoa(int64(100 + i)),
			"birthday":     c.birthday,
		}, token)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec := api.doJSON(t, http.MethodGet, "/api/contacts/birthdays", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	upcoming := decode[[]UpcomingBirthdayResponse](t, rec)
	require.Len(t, upcoming, 2)
	require.Equal(t, "Today", upcoming[0].FirstName)
	require.Equal(t, "2026-03-01", upcoming[0].NextBirthday)
	require.Equal(t, "Soon", upcoming[1].FirstName)

	rec = api.doJSON(t, http.MethodGet, "/api/contacts/birthdays?days=60", nil, token)
	require.Len(t, decode[[]UpcomingBirthdayResponse](t, rec), 3)
}

func TestUsersMeUsesCache(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register(t, "alice", "alice@example.com").AccessToken

	rec := api.doJSON(t, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode[UserResponse](t, rec)
	require.Equal(t, "alice", me.Username)

	_, ok, err := api.cache.Get(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUpdateAvatar(t *testing.T) {
	uploader := &fakeUploader{url: "https://cdn.example"}
	api := newTestAPI(t, func(o *Options) { o.Avatars = uploader })
	token := api.register(t, "alice", "alice@example.com").AccessToken

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "me.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	rec := api.do(t, http.MethodPatch, "/api/users/avatar", &body, map[string]string{
		"Content-Type":  writer.FormDataContentType(),
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "https://cdn.example/alice@example.com", decode[UserResponse](t, rec).Avatar)
	require.Equal(t, len("png-bytes"), uploader.bytes)

	cached, ok, err := api.cache.Get(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "https://cdn.example/alice@example.com", cached.Avatar)

	rec = api.do(t, http.MethodPatch, "/api/users/avatar", strings.NewReader("x"), map[string]string{
		"Content-Type":  "text/plain",
		"Authorization": "Bearer " + token,
	})
	requireDetail(t, rec, http.StatusUnprocessableEntity, "file is required")
}

func TestUpdateAvatarNotConfigured(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register(t, "alice", "alice@example.com").AccessToken

	rec := api.doJSON(t, http.MethodPatch, "/api/users/avatar", nil, token)
	requireDetail(t, rec, http.StatusNotImplemented, "Avatar upload is not configured")
}

func TestRateLimitedRoutes(t *testing.T) {
	api := newTestAPI(t, func(o *Options) {
		o.Limiter = ratelimit.NewMemory(ratelimit.Rule{Times: 1, Window: 20 * time.Second})
	})
	token := api.register(t, "alice", "alice@example.com").AccessToken

	rec := api.doJSON(t, http.MethodGet, "/api/users/me", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.doJSON(t, http.MethodGet, "/api/users/me", nil, token)
	requireDetail(t, rec, http.StatusTooManyRequests, "Too Many Requests")
	require.NotEmpty(t, rec.Header().Get("Retry-After"))

	rec = api.doJSON(t, http.MethodGet, "/api/contacts", nil, token)
	require.Equal(t, http.StatusOK, rec.Code, "limits are per route")
}

func TestCORSPreflight(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(t, http.MethodOptions, "/api/contacts", nil, map[string]string{
		"Origin":                        "https://app.example",
		"Access-Control-Request-Method": http.MethodPost,
	})
	require.Less(t, rec.Code, 300)
	require.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
