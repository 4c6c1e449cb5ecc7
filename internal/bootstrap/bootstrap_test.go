package bootstrap

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	gorillaws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniconnect/internal/app/models"
	"github.com/yigit/uniconnect/internal/app/models/dto"
	appRepos "github.com/yigit/uniconnect/internal/app/repositories"
	"github.com/yigit/uniconnect/internal/app/views"
	"github.com/yigit/uniconnect/internal/config"
	"github.com/yigit/uniconnect/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/uniconnect/internal/pkg/auth"
	"github.com/yigit/uniconnect/internal/pkg/websocket"
	"github.com/yigit/uniconnect/internal/seed"
)

const testSecret = "bootstrap-test-secret"

type envelope struct {
	Success bool             `json:"success"`
	Data    json.RawMessage  `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.AllowedOrigins = []string{"http://localhost:5173"}
	cfg.Database.Driver = config.DriverMemory
	cfg.Database.Seed = true
	cfg.Auth.JWTSecret = testSecret
	cfg.Auth.SignInPath = "/auth"
	cfg.Pagination.DefaultSize = 20
	cfg.Pagination.MaxSize = 100
	return cfg
}

type app struct {
	router *gin.Engine
	deps   *Dependencies
}

// newApp boots the full stack on a seeded memory store. wrap may replace
// repositories before services are built.
func newApp(t *testing.T, wrap func(*appRepos.Repositories)) app {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := testConfig()
	store, err := SetupStore(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(store.Close)

	repos := *store.Repos
	if wrap != nil {
		wrap(&repos)
	}
	deps, err := BuildDependencies(ctx, cfg, &repos, zerolog.Nop())
	require.NoError(t, err)

	return app{router: SetupRouter(cfg, deps, zerolog.Nop()), deps: deps}
}

func token(t *testing.T, userID string) string {
	t.Helper()
	claims := pkgAuth.Claims{
		Email: "deniz@example.edu",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (a app) do(t *testing.T, method, path, body, bearer string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	a := newApp(t, nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/feed/posts"},
		{http.MethodPost, "/api/v1/feed/posts"},
		{http.MethodGet, "/api/v1/clubs"},
		{http.MethodGet, "/api/v1/events/upcoming"},
		{http.MethodGet, "/api/v1/resources"},
		{http.MethodGet, "/api/v1/profile"},
		{http.MethodGet, "/api/v1/course-ratings"},
	} {
		w, env := a.do(t, route.method, route.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
		require.NotNil(t, env.Error, route.path)
		assert.Equal(t, dto.ErrorCodeAuthRequired, env.Error.Code)
	}

	w, _ := a.do(t, http.MethodGet, "/api/v1/feed/posts", "", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPublicRoutes(t *testing.T) {
	a := newApp(t, nil)

	w, _ := a.do(t, http.MethodGet, "/api/v1/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := a.do(t, http.MethodGet, "/api/v1/session", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var session dto.SessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Nil(t, session.Session)
	assert.Equal(t, "/auth", session.RedirectTo)

	w, env = a.do(t, http.MethodGet, "/api/v1/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestFeedFlow(t *testing.T) {
	a := newApp(t, nil)
	bearer := token(t, seed.DemoStudentID)

	w, env := a.do(t, http.MethodGet, "/api/v1/feed/posts?category=lost_found", "", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	var page dto.ListResponse[views.PostCard]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, string(models.CategoryLostFound), page.Items[0].Category)

	w, env = a.do(t, http.MethodGet, "/api/v1/feed/posts?category=memes", "", bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "category", env.Error.Field)

	w, env = a.do(t, http.MethodPost, "/api/v1/feed/posts", `{"content":"  study group at 5  ","category":"academics"}`, bearer)
	require.Equal(t, http.StatusCreated, w.Code)
	var card views.PostCard
	require.NoError(t, json.Unmarshal(env.Data, &card))
	assert.Equal(t, "study group at 5", card.Content)

	w, env = a.do(t, http.MethodPost, "/api/v1/feed/posts/"+card.ID+"/like", `{"currentlyLiked":false,"displayedLikeCount":0}`, bearer)
	require.Equal(t, http.StatusOK, w.Code)
	var state views.LikeState
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.Equal(t, views.LikeState{PostID: card.ID, Liked: true, LikeCount: 1}, state)
}

func TestSupersededFeedResponseOmitsPayload(t *testing.T) {
	a := newApp(t, nil)
	bearer := token(t, seed.DemoStudentID)

	w, env := a.do(t, http.MethodGet, "/api/v1/feed/posts?view=tab-a&seq=5", "", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5", w.Header().Get("X-Request-Sequence"))
	assert.Empty(t, w.Header().Get("X-Request-Superseded"))
	var latest dto.SequencedResponse
	require.NoError(t, json.Unmarshal(env.Data, &latest))
	assert.False(t, latest.Superseded)
	assert.NotNil(t, latest.Payload)

	w, env = a.do(t, http.MethodGet, "/api/v1/feed/posts?view=tab-a&category=events&seq=3", "", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Header().Get("X-Request-Superseded"))
	var stale dto.SequencedResponse
	require.NoError(t, json.Unmarshal(env.Data, &stale))
	assert.True(t, stale.Superseded)
	assert.Nil(t, stale.Payload)
}

func TestSequencedViewInstancesAreIndependent(t *testing.T) {
	a := newApp(t, nil)
	bearer := token(t, seed.DemoStudentID)

	w, _ := a.do(t, http.MethodGet, "/api/v1/feed/posts?view=tab-a&seq=50", "", bearer)
	require.Equal(t, http.StatusOK, w.Code)

	for _, path := range []string{
		"/api/v1/feed/posts?view=tab-b&seq=1",
		"/api/v1/feed/posts?seq=1",
	} {
		w, env := a.do(t, http.MethodGet, path, "", bearer)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, "1", w.Header().Get("X-Request-Sequence"), path)
		assert.Empty(t, w.Header().Get("X-Request-Superseded"), path)

		var resp dto.SequencedResponse
		require.NoError(t, json.Unmarshal(env.Data, &resp))
		assert.False(t, resp.Superseded, path)
		assert.NotNil(t, resp.Payload, path)
	}
}

func TestEmptyAllowedOriginsAcceptsAnyOrigin(t *testing.T) {
	cfg := testConfig()
	cfg.Server.AllowedOrigins = nil

	var router *gin.Engine
	require.NotPanics(t, func() {
		router = SetupRouter(cfg, newApp(t, nil).deps, zerolog.Nop())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("Origin", "http://campus.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://campus.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestProfileUpdateCannotChangeRole(t *testing.T) {
	a := newApp(t, nil)
	bearer := token(t, seed.DemoStudentID)

	w, env := a.do(t, http.MethodPatch, "/api/v1/profile", `{"role":"club_admin","bio":"Robotics lead"}`, bearer)
	require.Equal(t, http.StatusOK, w.Code)

	var profile views.ProfileView
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "student", profile.Role)
	assert.Equal(t, "Student", profile.RoleLabel)
	assert.Equal(t, "Robotics lead", profile.Bio)
}

type deniedLikes struct {
	appRepos.PostRepository
}

func (deniedLikes) ToggleLike(context.Context, string, string, bool) (int, error) {
	return 0, &apperrors.StoreError{Op: "toggleLike", Code: "42501", Message: "permission denied for table post_likes"}
}

func TestToggleLikeFailureCarriesRevertedState(t *testing.T) {
	a := newApp(t, func(r *appRepos.Repositories) {
		r.Posts = deniedLikes{r.Posts}
	})
	bearer := token(t, seed.DemoStudentID)
	postID := "11111111-1111-4111-8111-111111111111"

	w, env := a.do(t, http.MethodPost, "/api/v1/feed/posts/"+postID+"/like", `{"currentlyLiked":true,"displayedLikeCount":7}`, bearer)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "permission denied for table post_likes", env.Error.Message)

	var state views.LikeState
	require.NoError(t, json.Unmarshal(env.Data, &state))
	assert.Equal(t, views.LikeState{PostID: postID, Liked: true, LikeCount: 7}, state)
}

func TestSignOutPushesIdentityEvent(t *testing.T) {
	a := newApp(t, nil)
	srv := httptest.NewServer(a.router)
	t.Cleanup(srv.Close)
	bearer := token(t, seed.DemoStudentID)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/session/events?access_token=" + bearer
	conn, resp, err := gorillaws.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	defer conn.Close()

	require.Eventually(t, func() bool {
		return a.deps.SessionService.SubscriberCount(seed.DemoStudentID) == 1
	}, 2*time.Second, 10*time.Millisecond)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/session/sign-out", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+bearer)
	signOut, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	signOut.Body.Close()
	require.Equal(t, http.StatusOK, signOut.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg websocket.Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, models.IdentitySignedOut, msg.Type)
	assert.Equal(t, seed.DemoStudentID, msg.UserID)
	assert.Equal(t, "/auth", msg.RedirectTo)
}

func TestSetupStoreRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Database.Driver = "sqlite"
	_, err := SetupStore(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}
