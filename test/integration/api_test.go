//go:build integration

package integration

import (
	"net/http"
	"testing"
	"time"

	"github.com/courtside/platform/internal/domain"
	"github.com/courtside/platform/internal/service"
	"github.com/courtside/platform/test/integration/testutil"
	"github.com/google/uuid"
)

func TestUsers_CreateAndList(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/api/users", map[string]string{"email": "ana@example.com", "name": "Ana"}, "")
	testutil.AssertStatus(t, resp, http.StatusCreated)
	var created domain.User
	testutil.DecodeJSON(t, resp, &created)
	if created.ID == uuid.Nil || created.Email != "ana@example.com" || created.Name != "Ana" {
		t.Fatalf("unexpected user: %+v", created)
	}

	resp = env.GET("/api/users")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var users []domain.User
	testutil.DecodeJSON(t, resp, &users)
	if len(users) != 1 || users[0].ID != created.ID {
		t.Fatalf("expected the created user, got %+v", users)
	}

	if ttl := env.Redis.TTL(service.UsersCacheKey); ttl != 60*time.Second {
		t.Errorf("expected users snapshot cached for 60s, got %v", ttl)
	}
}

func TestUsers_DuplicateEmail(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/api/users", map[string]string{"email": "dup@example.com", "name": "One"}, "")
	testutil.AssertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = env.POST("/api/users", map[string]string{"email": "dup@example.com", "name": "Two"}, "")
	testutil.AssertStatus(t, resp, http.StatusConflict)
	testutil.AssertFailure(t, resp, "email already registered")

	if n := testutil.CountRows(t, env, "users"); n != 1 {
		t.Errorf("expected 1 user row, got %d", n)
	}
}

func TestUsers_SnapshotIsStaleUntilExpiry(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/api/users")
	var before []domain.User
	testutil.DecodeJSON(t, resp, &before)
	if len(before) != 0 {
		t.Fatalf("expected no users, got %d", len(before))
	}

	resp = env.POST("/api/users", map[string]string{"email": "late@example.com", "name": "Late"}, "")
	testutil.AssertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	resp = env.GET("/api/users")
	var cached []domain.User
	testutil.DecodeJSON(t, resp, &cached)
	if len(cached) != 0 {
		t.Errorf("expected cached empty snapshot, got %d users", len(cached))
	}

	env.Redis.FastForward(61 * time.Second)

	resp = env.GET("/api/users")
	var fresh []domain.User
	testutil.DecodeJSON(t, resp, &fresh)
	if len(fresh) != 1 {
		t.Errorf("expected 1 user after expiry, got %d", len(fresh))
	}
}

func TestUsers_ServedWhenCacheIsDown(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.POST("/api/users", map[string]string{"email": "up@example.com", "name": "Up"}, "")
	testutil.AssertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	env.Redis.Close()

	resp = env.GET("/api/users")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var users []domain.User
	testutil.DecodeJSON(t, resp, &users)
	if len(users) != 1 {
		t.Errorf("expected 1 user, got %d", len(users))
	}
}

func TestCourts_RequireIdentity(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.SeedCourt("Avondale", "Atlanta")

	resp := env.GET("/api/courts")
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	testutil.AssertFailure(t, resp, "Unauthorized")

	resp = env.AuthGET("/api/courts", "not-a-jwt")
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	testutil.AssertFailure(t, resp, "Unauthorized")
}

func TestCourts_ListedByName(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.SeedCourt("Riverside", "New York")
	env.SeedCourt("Avondale", "Atlanta")
	env.SeedCourt("Midtown", "Atlanta")

	for name, get := range map[string]func(string, string) *http.Response{
		"bearer": env.AuthGET,
		"cookie": env.CookieGET,
	} {
		t.Run(name, func(t *testing.T) {
			resp := get("/api/courts", env.Token("user_1"))
			testutil.AssertStatus(t, resp, http.StatusOK)

			var body struct {
				Success bool           `json:"success"`
				Courts  []domain.Court `json:"courts"`
			}
			testutil.DecodeJSON(t, resp, &body)
			if !body.Success || len(body.Courts) != 3 {
				t.Fatalf("unexpected body: %+v", body)
			}
			want := []string{"Avondale", "Midtown", "Riverside"}
			for i, c := range body.Courts {
				if c.Name != want[i] {
					t.Errorf("courts[%d]: expected %s, got %s", i, want[i], c.Name)
				}
			}
		})
	}
}

func TestGames_CreateAndList(t *testing.T) {
	env := testutil.NewTestEnv(t)
	court := env.SeedCourt("Avondale", "Atlanta")
	token := env.Token("user_host")

	input := map[string]interface{}{
		"court_id":    court.ID,
		"sport":       "basketball",
		"starts_at":   time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
		"max_players": 10,
	}

	resp := env.POST("/api/games", input, "")
	testutil.AssertStatus(t, resp, http.StatusUnauthorized)
	resp.Body.Close()

	resp = env.POST("/api/games", input, token)
	testutil.AssertStatus(t, resp, http.StatusCreated)
	resp.Body.Close()

	input["court_id"] = uuid.New()
	resp = env.POST("/api/games", input, token)
	testutil.AssertStatus(t, resp, http.StatusNotFound)
	resp.Body.Close()

	resp = env.AuthGET("/api/games", env.Token("user_guest"))
	testutil.AssertStatus(t, resp, http.StatusOK)
	var body struct {
		Success bool          `json:"success"`
		Games   []domain.Game `json:"games"`
	}
	testutil.DecodeJSON(t, resp, &body)
	if len(body.Games) != 1 {
		t.Fatalf("expected 1 game, got %d", len(body.Games))
	}
	if body.Games[0].HostID != "user_host" || body.Games[0].CourtID != court.ID {
		t.Errorf("unexpected game: %+v", body.Games[0])
	}
}

func TestHealth(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/health")
	testutil.AssertStatus(t, resp, http.StatusOK)
	var body map[string]string
	testutil.DecodeJSON(t, resp, &body)
	if body["status"] != "healthy" {
		t.Errorf("expected healthy, got %v", body)
	}
}
