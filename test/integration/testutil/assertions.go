//go:build integration

package testutil

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

// DecodeJSON reads and decodes a JSON response body into dst.
func DecodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
}

// AssertStatus checks that the response has the expected HTTP status code.
func AssertStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	if resp.StatusCode != expected {
		t.Errorf("expected status %d, got %d", expected, resp.StatusCode)
	}
}

// AssertFailure checks that the response is a failure envelope with the
// expected message.
func AssertFailure(t *testing.T, resp *http.Response, expectedMessage string) {
	t.Helper()
	var env struct {
		Success *bool  `json:"success"`
		Error   string `json:"error"`
	}
	DecodeJSON(t, resp, &env)
	if env.Success == nil || *env.Success {
		t.Errorf("expected success=false, got %v", env.Success)
	}
	if env.Error != expectedMessage {
		t.Errorf("expected error %q, got %q", expectedMessage, env.Error)
	}
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, env *TestEnv, table string) int {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var count int
	if err := env.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		t.Fatalf("CountRows %s: %v", table, err)
	}
	return count
}
