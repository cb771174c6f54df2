package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkravets/falljournal/internal/common"
	"github.com/mkravets/falljournal/internal/logging"
	"github.com/mkravets/falljournal/internal/server/config"
	"github.com/mkravets/falljournal/internal/server/journal"
	"github.com/mkravets/falljournal/internal/server/users"
	"github.com/mkravets/falljournal/internal/session"
)

type fakeUserRepo struct {
	users map[string]*users.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*users.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *users.User) (*users.User, error) {
	if _, ok := f.users[user.Name]; ok {
		return nil, common.ErrorAlreadyExists
	}
	user.CreatedAt = time.Now()
	f.users[user.Name] = user
	return user, nil
}

func (f *fakeUserRepo) GetByName(_ context.Context, name string) (*users.User, error) {
	user, ok := f.users[name]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return user, nil
}

type fakeEntryRepo struct {
	entries map[string]map[string]*journal.Entry
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[string]map[string]*journal.Entry)}
}

func (f *fakeEntryRepo) Save(_ context.Context, username string, entry *journal.Entry) error {
	if f.entries[username] == nil {
		f.entries[username] = make(map[string]*journal.Entry)
	}
	entry.Key = entry.Timestamp.Format("2006-01-02-150405")
	f.entries[username][entry.Key] = entry
	return nil
}

func (f *fakeEntryRepo) ListByUser(_ context.Context, username string) ([]*journal.Entry, error) {
	keys := make([]string, 0, len(f.entries[username]))
	for k := range f.entries[username] {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	result := make([]*journal.Entry, 0, len(keys))
	for _, k := range keys {
		result = append(result, f.entries[username][k])
	}
	return result, nil
}

type fakeThemeRepo struct {
	themes map[string]session.Theme
}

func newFakeThemeRepo() *fakeThemeRepo {
	return &fakeThemeRepo{themes: make(map[string]session.Theme)}
}

func (f *fakeThemeRepo) Get(_ context.Context, username string) (session.Theme, error) {
	theme, ok := f.themes[username]
	if !ok {
		return session.DefaultTheme(), nil
	}
	return theme, nil
}

func (f *fakeThemeRepo) Put(_ context.Context, username string, theme session.Theme) error {
	f.themes[username] = theme
	return nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.Environment = "development"

	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))

	s := NewServer(cfg,
		users.NewService(newFakeUserRepo(), cfg),
		journal.NewService(newFakeEntryRepo()),
		newFakeThemeRepo(),
		logger,
	)

	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func newTestClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func postJSON(t *testing.T, client *http.Client, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodePayload(t *testing.T, resp *http.Response) Payload {
	t.Helper()
	defer resp.Body.Close()
	var p Payload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	return p
}

func signUpAndLogin(t *testing.T, client *http.Client, baseURL, username, password string) {
	t.Helper()

	resp := postJSON(t, client, baseURL+"/api/v1/auth/sign-up", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, client, baseURL+"/api/v1/auth/login", map[string]string{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSignUp(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t)

	resp := postJSON(t, client, ts.URL+"/api/v1/auth/sign-up", map[string]string{
		"username": "maria", "password": "pw1",
	})
	p := decodePayload(t, resp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, p.Success)

	resp = postJSON(t, client, ts.URL+"/api/v1/auth/sign-up", map[string]string{
		"username": "maria", "password": "other",
	})
	p = decodePayload(t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, p.Success)
}

func TestSignUpValidation(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t)

	resp := postJSON(t, client, ts.URL+"/api/v1/auth/sign-up", map[string]string{
		"username": "maria",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginSetsSessionCookie(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t)

	resp := postJSON(t, client, ts.URL+"/api/v1/auth/sign-up", map[string]string{
		"username": "maria", "password": "pw1",
	})
	resp.Body.Close()

	resp = postJSON(t, client, ts.URL+"/api/v1/auth/login", map[string]string{
		"username": "maria", "password": "pw1",
	})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == tokenCookieName && c.Value != "" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "token cookie not set")
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t)

	resp := postJSON(t, client, ts.URL+"/api/v1/auth/sign-up", map[string]string{
		"username": "maria", "password": "pw1",
	})
	resp.Body.Close()

	resp = postJSON(t, client, ts.URL+"/api/v1/auth/login", map[string]string{
		"username": "maria", "password": "wrong",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginUnknownUser(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t)

	resp := postJSON(t, client, ts.URL+"/api/v1/auth/login", map[string]string{
		"username": "ghost", "password": "pw",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEntriesRequireSession(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/entries")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateAndListEntries(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t)
	signUpAndLogin(t, client, ts.URL, "maria", "pw1")

	for i, title := range []string{"first", "second"} {
		resp := postJSON(t, client, ts.URL+"/api/v1/entries", map[string]any{
			"title":   title,
			"content": "body text",
			"mood":    "😌 Calm",
			"tags":    []string{"daily"},
			"date":    fmt.Sprintf("2025-09-1%dT08:00:00Z", i),
		})
		p := decodePayload(t, resp)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.True(t, p.Success)
	}

	resp, err := client.Get(ts.URL + "/api/v1/entries")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var p struct {
		Success bool            `json:"success"`
		Data    []entryResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&p))
	resp.Body.Close()

	require.Len(t, p.Data, 2)
	assert.Equal(t, "second", p.Data[0].Title)
	assert.Equal(t, "first", p.Data[1].Title)
	assert.Equal(t, "😌 Calm", p.Data[0].Mood)
}

func TestCreateEntryRequiresTitle(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t)
	signUpAndLogin(t, client, ts.URL, "maria", "pw1")

	resp := postJSON(t, client, ts.URL+"/api/v1/entries", map[string]string{
		"content": "no title here",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateEntryRejectsBadDate(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t)
	signUpAndLogin(t, client, ts.URL, "maria", "pw1")

	resp := postJSON(t, client, ts.URL+"/api/v1/entries", map[string]string{
		"title": "t", "date": "yesterday",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestThemeRoundTrip(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t)
	signUpAndLogin(t, client, ts.URL, "maria", "pw1")

	resp, err := client.Get(ts.URL + "/api/v1/theme")
	require.NoError(t, err)
	var getResp struct {
		Data session.Theme `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&getResp))
	resp.Body.Close()
	assert.Equal(t, session.DefaultTheme(), getResp.Data)

	custom := session.Theme{
		PrimaryColor:    "#123456",
		BackgroundColor: "#FFFFFF",
		FontChoice:      "Mono",
		Emoji:           "🍁",
		ShowHeaderImage: false,
	}
	data, err := json.Marshal(custom)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/theme", bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err = client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(ts.URL + "/api/v1/theme")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&getResp))
	resp.Body.Close()
	assert.Equal(t, custom, getResp.Data)
}

func TestLogoutClearsCookie(t *testing.T) {
	ts := newTestServer(t)
	client := newTestClient(t)
	signUpAndLogin(t, client, ts.URL, "maria", "pw1")

	resp := postJSON(t, client, ts.URL+"/api/v1/auth/logout", nil)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := client.Get(ts.URL + "/api/v1/entries")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGarbageCookieRejected(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/entries", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: tokenCookieName, Value: "not-a-jwt"})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
