package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portfolio/internal/auth"
	"portfolio/internal/handler"
	"portfolio/internal/mail"
	"portfolio/internal/middleware"
	"portfolio/internal/service"
	"portfolio/internal/store"
)

// fakeMailer records sent messages instead of relaying them.
type fakeMailer struct {
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type testServer struct {
	srv    *httptest.Server
	tokens *auth.TokenService
	mailer *fakeMailer
	svc    *service.PortfolioService
}

// newTestServer builds the same stack cmd/server wires: token service,
// file store on a temp dir, portfolio service, handlers and the auth
// middleware guarding the admin prefix.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens := auth.NewTokenService("test-secret", "admin", "admin123", logger)
	st := store.NewFileStore(filepath.Join(t.TempDir(), "portfolio.json"), logger)
	svc := service.NewPortfolioService(st, logger)
	mailer := &fakeMailer{}
	contactSvc := service.NewContactService(mailer, logger)

	portfolioHandler := handler.NewPortfolioHandler(svc, logger)
	loginHandler := handler.NewLoginHandler(tokens, logger)
	uploadHandler := handler.NewUploadHandler(filepath.Join(t.TempDir(), "uploads"), logger)
	contactHandler := handler.NewContactHandler(contactSvc, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", portfolioHandler.HealthCheck)
	mux.HandleFunc("GET /api/portfolio", portfolioHandler.Public)
	mux.HandleFunc("POST /api/contact", contactHandler.Send)
	handler.NewResourceHandler(svc.Skills, logger).Register(mux)
	handler.NewResourceHandler(svc.Projects, logger).Register(mux)
	handler.NewResourceHandler(svc.Experiences, logger).Register(mux)
	handler.NewResourceHandler(svc.Education, logger).Register(mux)
	handler.NewResourceHandler(svc.Certifications, logger).Register(mux)
	mux.HandleFunc("POST /api/admin/login", loginHandler.Login)
	mux.HandleFunc("POST /api/admin/upload", uploadHandler.Upload)
	mux.HandleFunc("GET /api/admin/personal-info", portfolioHandler.GetPersonalInfo)
	mux.HandleFunc("PUT /api/admin/personal-info", portfolioHandler.UpdatePersonalInfo)

	srv := httptest.NewServer(middleware.Recovery(logger)(middleware.Auth(tokens)(mux)))
	t.Cleanup(srv.Close)

	return &testServer{srv: srv, tokens: tokens, mailer: mailer, svc: svc}
}

func (ts *testServer) token(t *testing.T) string {
	t.Helper()
	token, err := ts.tokens.Issue("admin")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

// request sends a JSON request, optionally authenticated, and decodes the
// response body into a generic map.
func (ts *testServer) request(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, ts.srv.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := ts.request(t, http.MethodGet, "/api/admin/skills", tt.token, nil)
			if status != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", status)
			}
			if body["success"] != false {
				t.Errorf("success = %v, want false", body["success"])
			}
		})
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	// Sign a token with the right secret but an expiry in the past
	issued := time.Now().Add(-8 * 24 * time.Hour)
	claims := auth.Claims{
		Username: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issued),
			ExpiresAt: jwt.NewNumericDate(issued.Add(auth.TokenValidity)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	ts := newTestServer(t)
	status, _ := ts.request(t, http.MethodGet, "/api/admin/skills", expired, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d for expired token, want 401", status)
	}
}

func TestLoginEndpoint(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.request(t, http.MethodPost, "/api/admin/login", "",
		map[string]any{"username": "admin", "password": "admin123"})
	if status != http.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("login response has no token")
	}

	// The returned token must pass the middleware
	status, _ = ts.request(t, http.MethodGet, "/api/admin/skills", token, nil)
	if status != http.StatusOK {
		t.Errorf("status with issued token = %d, want 200", status)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.request(t, http.MethodPost, "/api/admin/login", "",
		map[string]any{"username": "admin", "password": "wrong"})
	if status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", status)
	}
	if body["message"] != "Invalid credentials" {
		t.Errorf("message = %v", body["message"])
	}
}

func TestCRUDRoundtrip(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t)

	status, body := ts.request(t, http.MethodPost, "/api/admin/skills", token,
		map[string]any{"name": "Docker", "category": "DevOps"})
	if status != http.StatusOK {
		t.Fatalf("create status = %d: %v", status, body)
	}
	created := body["data"].(map[string]any)
	id := created["id"].(string)
	if id == "" {
		t.Fatal("created skill has no id")
	}

	status, body = ts.request(t, http.MethodPut, "/api/admin/skills", token,
		map[string]any{"id": id, "level": "O'rta"})
	if status != http.StatusOK {
		t.Fatalf("update status = %d: %v", status, body)
	}
	updated := body["data"].(map[string]any)
	if updated["level"] != "O'rta" || updated["name"] != "Docker" {
		t.Errorf("update result = %v, want merged entity", updated)
	}

	status, _ = ts.request(t, http.MethodDelete, "/api/admin/skills?id="+id, token, nil)
	if status != http.StatusOK {
		t.Fatalf("delete status = %d", status)
	}
}

func TestDeleteUnknownIDIs404(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t)

	_, before := ts.request(t, http.MethodGet, "/api/admin/skills", token, nil)
	beforeLen := len(before["data"].([]any))

	status, _ := ts.request(t, http.MethodDelete, "/api/admin/skills?id=doesnotexist", token, nil)
	if status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}

	_, after := ts.request(t, http.MethodGet, "/api/admin/skills", token, nil)
	if got := len(after["data"].([]any)); got != beforeLen {
		t.Errorf("collection length changed %d -> %d on failed delete", beforeLen, got)
	}
}

func TestUpdateWithoutIDIs400(t *testing.T) {
	ts := newTestServer(t)

	status, _ := ts.request(t, http.MethodPut, "/api/admin/skills", ts.token(t),
		map[string]any{"name": "no id here"})
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestProjectLegacyFieldsOverHTTP(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t)

	status, body := ts.request(t, http.MethodPost, "/api/admin/projects", token, map[string]any{
		"title":       "Old Client",
		"description": "built before multi-image support",
		"image":       "cover.png",
		"category":    "Backend",
		"githubUrl":   "https://github.com/example/old",
	})
	if status != http.StatusOK {
		t.Fatalf("create status = %d: %v", status, body)
	}
	project := body["data"].(map[string]any)

	images, _ := project["images"].([]any)
	if len(images) != 1 || images[0] != "cover.png" {
		t.Errorf("images = %v, want synthesized [cover.png]", images)
	}
	categories, _ := project["categories"].([]any)
	if len(categories) != 1 || categories[0] != "Backend" {
		t.Errorf("categories = %v, want synthesized [Backend]", categories)
	}
	links, _ := project["githubLinks"].([]any)
	if len(links) != 1 {
		t.Fatalf("githubLinks = %v, want one synthesized link", links)
	}
	if link := links[0].(map[string]any); link["url"] != "https://github.com/example/old" {
		t.Errorf("link url = %v", link["url"])
	}
}

func TestReorderEndpoint(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t)

	_, a := ts.request(t, http.MethodPost, "/api/admin/skills", token, map[string]any{"name": "First"})
	_, b := ts.request(t, http.MethodPost, "/api/admin/skills", token, map[string]any{"name": "Second"})
	idA := a["data"].(map[string]any)["id"].(string)
	idB := b["data"].(map[string]any)["id"].(string)
	orderA := a["data"].(map[string]any)["order"].(float64)
	orderB := b["data"].(map[string]any)["order"].(float64)

	status, body := ts.request(t, http.MethodPost, "/api/admin/skills/reorder", token,
		map[string]any{"idA": idA, "idB": idB})
	if status != http.StatusOK {
		t.Fatalf("reorder status = %d: %v", status, body)
	}

	_, list := ts.request(t, http.MethodGet, "/api/admin/skills", token, nil)
	orders := map[string]float64{}
	for _, raw := range list["data"].([]any) {
		skill := raw.(map[string]any)
		orders[skill["id"].(string)] = skill["order"].(float64)
	}
	if orders[idA] != orderB || orders[idB] != orderA {
		t.Errorf("orders after swap: A=%v B=%v, want A=%v B=%v", orders[idA], orders[idB], orderB, orderA)
	}

	// Swapping an entity with itself is rejected
	status, _ = ts.request(t, http.MethodPost, "/api/admin/skills/reorder", token,
		map[string]any{"idA": idA, "idB": idA})
	if status != http.StatusBadRequest {
		t.Errorf("self-swap status = %d, want 400", status)
	}
}

func TestPublicPortfolioHidesInvisible(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t)

	ts.request(t, http.MethodPost, "/api/admin/skills", token,
		map[string]any{"name": "Secret", "visible": false})

	status, body := ts.request(t, http.MethodGet, "/api/portfolio", "", nil)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	data := body["data"].(map[string]any)
	for _, raw := range data["skills"].([]any) {
		if raw.(map[string]any)["name"] == "Secret" {
			t.Error("hidden skill leaked into public projection")
		}
	}
}

func TestPersonalInfoUpdate(t *testing.T) {
	ts := newTestServer(t)
	token := ts.token(t)

	status, body := ts.request(t, http.MethodPut, "/api/admin/personal-info", token,
		map[string]any{"title": "Staff Engineer"})
	if status != http.StatusOK {
		t.Fatalf("status = %d: %v", status, body)
	}
	info := body["data"].(map[string]any)
	if info["title"] != "Staff Engineer" {
		t.Errorf("title = %v", info["title"])
	}
	if info["name"] == "" {
		t.Error("partial update wiped untouched fields")
	}
}

func TestContactEndpoint(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.request(t, http.MethodPost, "/api/contact", "", map[string]any{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Hello there",
		"message": "I would like to discuss a project with you.",
	})
	if status != http.StatusOK {
		t.Fatalf("status = %d: %v", status, body)
	}
	if len(ts.mailer.sent) != 1 {
		t.Fatalf("mailer sent %d messages, want 1", len(ts.mailer.sent))
	}
	if got := ts.mailer.sent[0].Email; got != "visitor@example.com" {
		t.Errorf("relayed email = %q", got)
	}
}

func TestContactValidation(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.request(t, http.MethodPost, "/api/contact", "", map[string]any{
		"name":    "V",
		"email":   "not-an-email",
		"subject": "",
		"message": "short",
	})
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", status)
	}
	errs, _ := body["errors"].([]any)
	if len(errs) == 0 {
		t.Fatal("validation failure carries no field errors")
	}
	if len(ts.mailer.sent) != 0 {
		t.Error("invalid submission reached the mailer")
	}
}

func TestContactRelayFailureIsOpaque(t *testing.T) {
	ts := newTestServer(t)
	ts.mailer.err = fmt.Errorf("smtp down")

	status, body := ts.request(t, http.MethodPost, "/api/contact", "", map[string]any{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"subject": "Hello there",
		"message": "I would like to discuss a project with you.",
	})
	if status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if msg, _ := body["message"].(string); msg == "" || bytes.Contains([]byte(msg), []byte("smtp")) {
		t.Errorf("message %q must not leak relay details", msg)
	}
}

func TestUploadAcceptsPNG(t *testing.T) {
	ts := newTestServer(t)

	// Minimal valid PNG header so content sniffing sees image/png
	png := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 64)...)

	status, body := ts.upload(t, "photo.png", png)
	if status != http.StatusOK {
		t.Fatalf("status = %d: %v", status, body)
	}
	url, _ := body["url"].(string)
	if url == "" {
		t.Fatal("upload response has no url")
	}
	if !strings.HasPrefix(url, "/uploads/") {
		t.Errorf("url = %q, want /uploads/ prefix", url)
	}
}

func TestUploadRejectsNonImage(t *testing.T) {
	ts := newTestServer(t)

	status, body := ts.upload(t, "notes.txt", []byte("plain text pretending to be an image"))
	if status != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func (ts *testServer) upload(t *testing.T, filename string, content []byte) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.srv.URL+"/api/admin/upload", &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+ts.token(t))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, decoded
}
