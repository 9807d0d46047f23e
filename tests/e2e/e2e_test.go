//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/cartshop/cartshop/internal/auth"
	"github.com/cartshop/cartshop/internal/model"
	"github.com/cartshop/cartshop/internal/repository"
)

type messageResponse struct {
	Message string `json:"message"`
}

type productResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
}

type cartResponse struct {
	Items []struct {
		ItemID    int64   `json:"item_id"`
		ProductID int64   `json:"product_id"`
		Name      string  `json:"name"`
		Price     float64 `json:"price"`
	} `json:"items"`
}

func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("CARTSHOP_BASE_URL", "http://localhost:8080")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatalf("DATABASE_URL is required for e2e tests")
	}

	username := fmt.Sprintf("e2e-%d", time.Now().UnixNano())
	password := "e2e-password"
	seedUser(t, dbURL, username, password)

	client := newSessionClient(t)

	// Login establishes a session cookie.
	var login messageResponse
	status := doJSON(t, client, http.MethodPost, baseURL+"/login", map[string]any{
		"username": username,
		"password": password,
	}, &login)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from login, got %d", status)
	}
	if login.Message != "Login successful" {
		t.Fatalf("unexpected login message %q", login.Message)
	}

	// Product lifecycle.
	var added messageResponse
	status = doJSON(t, client, http.MethodPost, baseURL+"/api/products/add", map[string]any{
		"name":        "E2E Widget",
		"price":       12.5,
		"description": "smoke test product",
	}, &added)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from product add, got %d", status)
	}
	if added.Message != "Product added successfully" {
		t.Fatalf("unexpected add message %q", added.Message)
	}

	product := findProduct(t, client, baseURL, "E2E Widget")

	var fetched productResponse
	status = doJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/products/%d", baseURL, product.ID), nil, &fetched)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from product get, got %d", status)
	}
	if fetched.Description != "smoke test product" {
		t.Fatalf("unexpected description %q", fetched.Description)
	}

	status = doJSON(t, client, http.MethodPut, fmt.Sprintf("%s/api/products/update/%d", baseURL, product.ID), map[string]any{
		"price": 9.99,
	}, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from product update, got %d", status)
	}

	status = doJSON(t, client, http.MethodGet, fmt.Sprintf("%s/api/products/%d", baseURL, product.ID), nil, &fetched)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from product re-get, got %d", status)
	}
	if fetched.Price != 9.99 || fetched.Name != "E2E Widget" {
		t.Fatalf("partial update lost fields: %+v", fetched)
	}

	// Cart lifecycle: two adds, one remove, one row left.
	addURL := fmt.Sprintf("%s/api/cart/add/%d", baseURL, product.ID)
	for i := 0; i < 2; i++ {
		status = doJSON(t, client, http.MethodPost, addURL, nil, nil)
		if status != http.StatusOK {
			t.Fatalf("expected 200 from cart add, got %d", status)
		}
	}

	status = doJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/api/cart/remove/%d", baseURL, product.ID), nil, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from cart remove, got %d", status)
	}

	var cart cartResponse
	status = doJSON(t, client, http.MethodGet, baseURL+"/api/cart", nil, &cart)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from cart list, got %d", status)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 cart item, got %d", len(cart.Items))
	}
	if cart.Items[0].ProductID != product.ID || cart.Items[0].Price != 9.99 {
		t.Fatalf("unexpected cart entry: %+v", cart.Items[0])
	}

	// Cleanup the catalog entry; the cart row goes with it via the FK cascade.
	status = doJSON(t, client, http.MethodDelete, fmt.Sprintf("%s/api/products/delete/%d", baseURL, product.ID), nil, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from product delete, got %d", status)
	}

	// Logout invalidates the session.
	status = doJSON(t, client, http.MethodPost, baseURL+"/logout", nil, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from logout, got %d", status)
	}
	status = doJSON(t, client, http.MethodGet, baseURL+"/api/cart", nil, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", status)
	}
}

func TestE2ELoginFailuresAreUniform(t *testing.T) {
	baseURL := envOrDefault("CARTSHOP_BASE_URL", "http://localhost:8080")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatalf("DATABASE_URL is required for e2e tests")
	}

	username := fmt.Sprintf("e2e-auth-%d", time.Now().UnixNano())
	seedUser(t, dbURL, username, "right-password")

	client := newSessionClient(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", username + "-missing", "right-password"},
		{"wrong password", username, "wrong-password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var resp messageResponse
			status := doJSON(t, client, http.MethodPost, baseURL+"/login", map[string]any{
				"username": tc.username,
				"password": tc.password,
			}, &resp)
			if status != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", status)
			}
			if resp.Message != "Unauthorized. Invalid credentials" {
				t.Fatalf("unexpected message %q", resp.Message)
			}
		})
	}
}

func TestE2ENoSecretsInResponses(t *testing.T) {
	baseURL := envOrDefault("CARTSHOP_BASE_URL", "http://localhost:8080")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatalf("DATABASE_URL is required for e2e tests")
	}

	username := fmt.Sprintf("e2e-leak-%d", time.Now().UnixNano())
	password := "leak-check-password"
	seedUser(t, dbURL, username, password)

	client := newSessionClient(t)

	payload, _ := json.Marshal(map[string]any{"username": username, "password": password})
	resp, err := client.Post(baseURL+"/login", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if strings.Contains(string(body), password) {
		t.Error("login response echoed the password")
	}
	if strings.Contains(string(body), "argon2") {
		t.Error("login response leaked a password hash")
	}
}

func seedUser(t *testing.T, dbURL, username, password string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer repo.Close()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	if err := repo.CreateUser(ctx, &model.User{Username: username, PasswordHash: hash}); err != nil {
		t.Fatalf("create user: %v", err)
	}
}

func newSessionClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("create cookie jar: %v", err)
	}
	return &http.Client{Timeout: 15 * time.Second, Jar: jar}
}

func findProduct(t *testing.T, client *http.Client, baseURL, name string) productResponse {
	t.Helper()

	var products []productResponse
	status := doJSON(t, client, http.MethodGet, baseURL+"/api/products", nil, &products)
	if status != http.StatusOK {
		t.Fatalf("expected 200 from product list, got %d", status)
	}
	for _, p := range products {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("product %q not found in listing", name)
	return productResponse{}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any, out any) int {
	t.Helper()

	var buf io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		buf = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, buf)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && resp.ContentLength != 0 {
			t.Fatalf("decode response: %v", err)
		}
	}

	return resp.StatusCode
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
