//go:build integration

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/courtside/platform/internal/auth"
	"github.com/courtside/platform/internal/domain"
	"github.com/google/uuid"
)

// Token signs a session token for subject with the test secret.
func (env *TestEnv) Token(subject string) string {
	env.t.Helper()
	token, err := auth.IssueDevToken(TestJWTSecret, subject, time.Hour)
	if err != nil {
		env.t.Fatalf("Token: %v", err)
	}
	return token
}

// SeedCourt inserts a court directly; courts have no write endpoint.
func (env *TestEnv) SeedCourt(name, city string) domain.Court {
	env.t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c := domain.Court{
		ID:        uuid.New(),
		Name:      name,
		Address:   "1 Main St",
		City:      city,
		Sport:     "basketball",
		Latitude:  40.7,
		Longitude: -74.0,
		Lights:    true,
	}
	_, err := env.Pool.Exec(ctx,
		`INSERT INTO courts (id, name, address, city, sport, latitude, longitude, lights)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.Name, c.Address, c.City, c.Sport, c.Latitude, c.Longitude, c.Lights)
	if err != nil {
		env.t.Fatalf("SeedCourt: %v", err)
	}
	return c
}

// GET performs an unauthenticated GET request.
func (env *TestEnv) GET(path string) *http.Response {
	env.t.Helper()
	resp, err := http.Get(env.Server.URL + path)
	if err != nil {
		env.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

// POST performs a POST request with optional auth token.
func (env *TestEnv) POST(path string, body interface{}, token string) *http.Response {
	env.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			env.t.Fatalf("POST %s: encode: %v", path, err)
		}
	}
	req, err := http.NewRequest(http.MethodPost, env.Server.URL+path, &buf)
	if err != nil {
		env.t.Fatalf("POST %s: new request: %v", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// AuthGET performs an authenticated GET request.
func (env *TestEnv) AuthGET(path, token string) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest(http.MethodGet, env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("AuthGET %s: new request: %v", path, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("AuthGET %s: %v", path, err)
	}
	return resp
}

// CookieGET performs a GET request carrying the session cookie.
func (env *TestEnv) CookieGET(path, token string) *http.Response {
	env.t.Helper()
	req, err := http.NewRequest(http.MethodGet, env.Server.URL+path, nil)
	if err != nil {
		env.t.Fatalf("CookieGET %s: new request: %v", path, err)
	}
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		env.t.Fatalf("CookieGET %s: %v", path, err)
	}
	return resp
}
