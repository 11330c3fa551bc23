package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var (
	apiURL           = getEnv("API_URL", "http://localhost:3000")
	testUserEmail    = fmt.Sprintf("test-%d@example.com", time.Now().UnixNano())
	testUserPassword = "testPassword123"
	authToken        string
	userID           string
	postID           string
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func TestMain(m *testing.M) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		fmt.Println("Skipping integration tests. Set INTEGRATION_TEST=true to run.")
		os.Exit(0)
	}
	os.Exit(m.Run())
}

func doJSON(t *testing.T, method, path string, payload interface{}, token string) *http.Response {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
	}

	req, err := http.NewRequest(method, apiURL+path, &body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	resp, err := http.Get(apiURL + "/health")
	if err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
}

func TestUserRegistration(t *testing.T) {
	resp := doJSON(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    testUserEmail,
		"password": testUserPassword,
		"name":     "Test User",
	}, "")

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}

	var result map[string]string
	decode(t, resp, &result)
	if result["message"] != "User registered successfully" {
		t.Errorf("unexpected message %q", result["message"])
	}
}

func TestDuplicateRegistration(t *testing.T) {
	resp := doJSON(t, http.MethodPost, "/auth/register", map[string]string{
		"email":    testUserEmail,
		"password": testUserPassword,
		"name":     "Test User",
	}, "")

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUserLogin(t *testing.T) {
	resp := doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    testUserEmail,
		"password": testUserPassword,
	}, "")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]string
	decode(t, resp, &result)
	authToken = result["token"]
	if authToken == "" {
		t.Error("expected auth token in response")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	resp := doJSON(t, http.MethodPost, "/auth/login", map[string]string{
		"email":    testUserEmail,
		"password": "wrong",
	}, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.StatusCode)
	}
}

func TestCurrentUser(t *testing.T) {
	if authToken == "" {
		t.Skip("no auth token available")
	}

	resp := doJSON(t, http.MethodGet, "/auth/user", nil, authToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var user map[string]interface{}
	decode(t, resp, &user)
	if _, leaked := user["password"]; leaked {
		t.Error("password must not be returned")
	}
	userID, _ = user["_id"].(string)
	if userID == "" {
		t.Error("expected user id")
	}
}

func TestUnauthorizedAccess(t *testing.T) {
	resp := doJSON(t, http.MethodGet, "/auth/user", nil, "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", resp.StatusCode)
	}
}

func TestCreatePost(t *testing.T) {
	if authToken == "" {
		t.Skip("no auth token available")
	}

	resp := doJSON(t, http.MethodPost, "/posts", map[string]interface{}{
		"title":            "Integration post",
		"body":             "Written by the integration suite.",
		"category":         "testing",
		"readTime":         4,
		"excerpt":          "Integration",
		"tags":             []string{"go", "integration"},
		"authorName":       "Test User",
		"authorImageURL":   "https://example.com/avatar.png",
		"featuredImageURL": "https://example.com/featured.png",
	}, authToken)

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}

	var post map[string]interface{}
	decode(t, resp, &post)
	postID, _ = post["_id"].(string)
	if postID == "" {
		t.Fatal("expected post id")
	}
	if post["AuthorID"] != userID && userID != "" {
		t.Errorf("expected author %s, got %v", userID, post["AuthorID"])
	}
}

func TestGetAndListPosts(t *testing.T) {
	if postID == "" {
		t.Skip("no post available")
	}

	resp := doJSON(t, http.MethodGet, "/posts/"+postID, nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, "/posts/blogs/user", nil, authToken)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var mine []map[string]interface{}
	decode(t, resp, &mine)

	found := false
	for _, p := range mine {
		if p["_id"] == postID {
			found = true
		}
	}
	if !found {
		t.Error("created post missing from the author's list")
	}
}

func TestUpdatePost(t *testing.T) {
	if postID == "" {
		t.Skip("no post available")
	}

	resp := doJSON(t, http.MethodPut, "/posts/"+postID, map[string]string{"title": "Renamed"}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	var post map[string]interface{}
	decode(t, resp, &post)
	if post["Title"] != "Renamed" {
		t.Errorf("expected updated title, got %v", post["Title"])
	}
	if post["Category"] != "testing" {
		t.Errorf("category should be untouched, got %v", post["Category"])
	}

	resp = doJSON(t, http.MethodGet, "/posts/"+postID, nil, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	var fetched map[string]interface{}
	decode(t, resp, &fetched)
	if fetched["Title"] != "Renamed" {
		t.Errorf("read after update returned %v", fetched["Title"])
	}
}

func TestComments(t *testing.T) {
	if postID == "" {
		t.Skip("no post available")
	}

	resp := doJSON(t, http.MethodPost, "/comments/"+postID, map[string]string{
		"userName": "Reader",
		"text":     "Nice post",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, "/comments/"+postID, nil, "")
	var comments []map[string]interface{}
	decode(t, resp, &comments)
	if len(comments) != 1 {
		t.Errorf("expected 1 comment, got %d", len(comments))
	}
}

func TestQRCode(t *testing.T) {
	if postID == "" {
		t.Skip("no post available")
	}

	resp, err := http.Get(apiURL + "/posts/" + postID + "/qrcode")
	if err != nil {
		t.Fatalf("qrcode request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %s", ct)
	}
}

func TestDeletePost(t *testing.T) {
	if postID == "" {
		t.Skip("no post available")
	}

	resp := doJSON(t, http.MethodDelete, "/posts/"+postID, nil, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, "/posts/"+postID, nil, "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404 after delete, got %d", resp.StatusCode)
	}
}
