package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/mvidmar/zaloga/internal/db"
	"github.com/mvidmar/zaloga/internal/model"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database := db.NewTestDB(t)
	server := httptest.NewServer(NewRouter(database))
	t.Cleanup(server.Close)
	return server
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func doJSON(t *testing.T, method, url string, body any) (int, testEnvelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var env testEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp.StatusCode, env
}

func testItemPayload() map[string]any {
	return map[string]any{
		"name":        "Test Laptop",
		"description": "A test laptop",
		"price":       1299.99,
		"category":    "Electronics",
		"inStock":     true,
	}
}

func TestItemsCRUDFlow(t *testing.T) {
	server := setupTestServer(t)

	// Create.
	status, env := doJSON(t, "POST", server.URL+"/api/items", testItemPayload())
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", status, env.Error)
	}
	if !env.Success {
		t.Fatal("expected success envelope on create")
	}

	var created model.Item
	json.Unmarshal(env.Data, &created)
	if created.ID == "" {
		t.Fatal("expected generated id on created item")
	}
	if created.Name != "Test Laptop" || created.Price != 1299.99 {
		t.Errorf("unexpected created item: %+v", created)
	}

	// List includes it.
	status, env = doJSON(t, "GET", server.URL+"/api/items", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if env.Count == nil || *env.Count != 1 {
		t.Errorf("expected count 1, got %v", env.Count)
	}

	// Get one.
	status, env = doJSON(t, "GET", server.URL+"/api/items/"+created.ID, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	var got model.Item
	json.Unmarshal(env.Data, &got)
	if got.ID != created.ID || got.Description != "A test laptop" {
		t.Errorf("unexpected item from get: %+v", got)
	}

	// Full-replace update with a new price.
	payload := testItemPayload()
	payload["price"] = 1199.99
	status, env = doJSON(t, "PUT", server.URL+"/api/items/"+created.ID, payload)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", status, env.Error)
	}
	var updated model.Item
	json.Unmarshal(env.Data, &updated)
	if updated.ID != created.ID {
		t.Errorf("expected unchanged id, got %q", updated.ID)
	}
	if updated.Price != 1199.99 {
		t.Errorf("expected updated price 1199.99, got %v", updated.Price)
	}

	// Delete, then get -> 404.
	status, env = doJSON(t, "DELETE", server.URL+"/api/items/"+created.ID, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !env.Success || string(env.Data) != "{}" {
		t.Errorf("expected empty data object on delete, got %s", env.Data)
	}

	status, env = doJSON(t, "GET", server.URL+"/api/items/"+created.ID, nil)
	if status != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", status)
	}
	if env.Success {
		t.Error("expected failure envelope after delete")
	}
}

func TestListEmpty(t *testing.T) {
	server := setupTestServer(t)

	status, env := doJSON(t, "GET", server.URL+"/api/items", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if env.Count == nil || *env.Count != 0 {
		t.Errorf("expected count 0, got %v", env.Count)
	}
	if string(env.Data) != "[]" {
		t.Errorf("expected empty array data, got %s", env.Data)
	}
}

func TestCreateValidationFailure(t *testing.T) {
	server := setupTestServer(t)

	payload := testItemPayload()
	payload["price"] = -5
	status, env := doJSON(t, "POST", server.URL+"/api/items", payload)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
	if env.Error != "Price cannot be negative" {
		t.Errorf("expected price error message, got %q", env.Error)
	}

	// The failed write must not have touched the store.
	_, env = doJSON(t, "GET", server.URL+"/api/items", nil)
	if env.Count == nil || *env.Count != 0 {
		t.Errorf("expected count 0 after rejected create, got %v", env.Count)
	}
}

func TestCreateMissingFields(t *testing.T) {
	server := setupTestServer(t)

	status, env := doJSON(t, "POST", server.URL+"/api/items", map[string]any{
		"description": "No name",
		"price":       10,
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if env.Error != "Name is required" {
		t.Errorf("expected first failing field in message, got %q", env.Error)
	}
}

func TestCreateDefaults(t *testing.T) {
	server := setupTestServer(t)

	// Category and inStock are optional and default to Other/true.
	status, env := doJSON(t, "POST", server.URL+"/api/items", map[string]any{
		"name":        "Mug",
		"description": "A mug",
		"price":       4.5,
	})
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", status, env.Error)
	}
	var created model.Item
	json.Unmarshal(env.Data, &created)
	if created.Category != model.CategoryOther {
		t.Errorf("expected default category Other, got %q", created.Category)
	}
	if !created.InStock {
		t.Error("expected inStock to default to true")
	}
}

func TestUpdateNotFound(t *testing.T) {
	server := setupTestServer(t)

	status, env := doJSON(t, "PUT", server.URL+"/api/items/"+uuid.NewString(), testItemPayload())
	if status != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", status)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
}

func TestUpdateRequiresAllFields(t *testing.T) {
	server := setupTestServer(t)

	status, env := doJSON(t, "POST", server.URL+"/api/items", testItemPayload())
	if status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	var created model.Item
	json.Unmarshal(env.Data, &created)

	// Partial payloads are rejected: update is a full replace.
	status, env = doJSON(t, "PUT", server.URL+"/api/items/"+created.ID, map[string]any{
		"price": 9.99,
	})
	if status != http.StatusBadRequest {
		t.Errorf("expected 400 for partial update, got %d", status)
	}
	if env.Error != "Name is required" {
		t.Errorf("expected validation message, got %q", env.Error)
	}
}

func TestMalformedID(t *testing.T) {
	server := setupTestServer(t)

	for _, method := range []string{"GET", "PUT", "DELETE"} {
		var body any
		if method == "PUT" {
			body = testItemPayload()
		}
		status, env := doJSON(t, method, server.URL+"/api/items/not-a-uuid", body)
		if status != http.StatusBadRequest {
			t.Errorf("%s: expected 400 for malformed id, got %d", method, status)
		}
		if env.Error != "invalid item id" {
			t.Errorf("%s: expected invalid id message, got %q", method, env.Error)
		}
	}
}

func TestDeleteNotFound(t *testing.T) {
	server := setupTestServer(t)

	status, env := doJSON(t, "DELETE", server.URL+"/api/items/"+uuid.NewString(), nil)
	if status != http.StatusNotFound {
		t.Errorf("expected 404, got %d", status)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
}

func TestInvalidJSONBody(t *testing.T) {
	server := setupTestServer(t)

	resp, err := http.Post(server.URL+"/api/items", "application/json", bytes.NewReader([]byte("{not json")))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", resp.StatusCode)
	}
}
