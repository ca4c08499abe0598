package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
	"github.com/Marufhossain07/fit-sync-backend/internal/services"
	"github.com/Marufhossain07/fit-sync-backend/pkg/utils"
)

type stubUserAccountService struct {
	users       map[string]*models.User
	updateCalls int
	lastRename  string
}

func (s *stubUserAccountService) RegisterOrTouch(_ context.Context, input services.RegisterUserInput) (*models.User, bool, error) {
	if user, ok := s.users[input.Email]; ok {
		user.LastLogin = input.LastLogin
		return user, false, nil
	}
	user := &models.User{
		Email:     input.Email,
		Name:      input.Name,
		Role:      "member",
		LastLogin: input.LastLogin,
	}
	if s.users == nil {
		s.users = map[string]*models.User{}
	}
	s.users[input.Email] = user
	return user, true, nil
}

func (s *stubUserAccountService) UpdateName(_ context.Context, email, name string) (bool, error) {
	s.updateCalls++
	s.lastRename = name
	_, ok := s.users[email]
	return ok, nil
}

type stubRoleDirectory struct {
	users map[string]*models.User
	calls int
}

func (s *stubRoleDirectory) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.calls++
	user, ok := s.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

// withCallerEmail simulates the auth middleware having validated a token.
func withCallerEmail(email string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("email", email)
		return c.Next()
	}
}

func TestIssueTokenReturnsVerifiableToken(t *testing.T) {
	handler := NewAuthHandler(&stubUserAccountService{}, &stubRoleDirectory{}, "issue-secret")

	app := fiber.New()
	app.Post("/jwt", handler.IssueToken)

	req := httptest.NewRequest(http.MethodPost, "/jwt", strings.NewReader(`{"email":"Member@Example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	claims, err := utils.ValidateToken(body.Token, "issue-secret")
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Email != "member@example.com" {
		t.Fatalf("expected lowercased email claim, got %q", claims.Email)
	}
}

func TestRegisterUserCreatesThenReportsExisting(t *testing.T) {
	service := &stubUserAccountService{}
	handler := NewAuthHandler(service, &stubRoleDirectory{}, "secret")

	app := fiber.New()
	app.Post("/users", handler.RegisterUser)

	payload := `{"email":"new@example.com","name":"New Member","last_login":"` +
		time.Now().UTC().Format(time.RFC3339) + `"}`

	first := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(payload))
	first.Header.Set("Content-Type", "application/json")
	firstResp, err := app.Test(first)
	if err != nil {
		t.Fatalf("app.Test first: %v", err)
	}
	defer firstResp.Body.Close()

	if firstResp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 on first sign-in, got %d", firstResp.StatusCode)
	}

	second := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(payload))
	second.Header.Set("Content-Type", "application/json")
	secondResp, err := app.Test(second)
	if err != nil {
		t.Fatalf("app.Test second: %v", err)
	}
	defer secondResp.Body.Close()

	if secondResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on repeat sign-in, got %d", secondResp.StatusCode)
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(secondResp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Message != "user already exists" {
		t.Fatalf("expected existing-user message, got %q", body.Message)
	}
}

func TestRegisterUserRejectsBadEmailAndTimestamp(t *testing.T) {
	handler := NewAuthHandler(&stubUserAccountService{}, &stubRoleDirectory{}, "secret")

	app := fiber.New()
	app.Post("/users", handler.RegisterUser)

	for _, payload := range []string{
		`{"email":"not-an-email"}`,
		`{"email":"ok@example.com","last_login":"yesterday"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("app.Test: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", payload, resp.StatusCode)
		}
	}
}

func TestUpdateNameRejectsForeignEmail(t *testing.T) {
	service := &stubUserAccountService{users: map[string]*models.User{
		"me@example.com": {Email: "me@example.com", Name: "Old Name", Role: "member"},
	}}
	handler := NewAuthHandler(service, &stubRoleDirectory{}, "secret")

	app := fiber.New()
	app.Patch("/user", withCallerEmail("me@example.com"), handler.UpdateName)

	req := httptest.NewRequest(http.MethodPatch, "/user",
		strings.NewReader(`{"email":"other@example.com","name":"Hijack"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if service.updateCalls != 0 {
		t.Fatalf("expected no service call on mismatch, got %d", service.updateCalls)
	}
}

func TestUpdateNameRenamesCaller(t *testing.T) {
	service := &stubUserAccountService{users: map[string]*models.User{
		"me@example.com": {Email: "me@example.com", Name: "Old Name", Role: "member"},
	}}
	handler := NewAuthHandler(service, &stubRoleDirectory{}, "secret")

	app := fiber.New()
	app.Patch("/user", withCallerEmail("me@example.com"), handler.UpdateName)

	req := httptest.NewRequest(http.MethodPatch, "/user",
		strings.NewReader(`{"email":"me@example.com","name":"New Name"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.lastRename != "New Name" {
		t.Fatalf("expected rename to reach service, got %q", service.lastRename)
	}
}

func TestCheckAdminRejectsForeignEmailWithoutLookup(t *testing.T) {
	directory := &stubRoleDirectory{users: map[string]*models.User{
		"admin@example.com": {Email: "admin@example.com", Role: "admin"},
	}}
	handler := NewAuthHandler(&stubUserAccountService{}, directory, "secret")

	app := fiber.New()
	app.Get("/users/admin/:email", withCallerEmail("member@example.com"), handler.CheckAdmin)

	req := httptest.NewRequest(http.MethodGet, "/users/admin/admin@example.com", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if directory.calls != 0 {
		t.Fatalf("expected no directory lookup on mismatch, got %d", directory.calls)
	}
}

func TestCheckAdminReportsStoredRole(t *testing.T) {
	directory := &stubRoleDirectory{users: map[string]*models.User{
		"admin@example.com":  {Email: "admin@example.com", Role: "admin"},
		"member@example.com": {Email: "member@example.com", Role: "member"},
	}}
	handler := NewAuthHandler(&stubUserAccountService{}, directory, "secret")

	app := fiber.New()
	app.Get("/users/admin/:email", func(c *fiber.Ctx) error {
		c.Locals("email", strings.ToLower(c.Params("email")))
		return c.Next()
	}, handler.CheckAdmin)

	cases := []struct {
		email string
		want  bool
	}{
		{"admin@example.com", true},
		{"member@example.com", false},
		{"unknown@example.com", false},
	}

	for _, tc := range cases {
		t.Run(tc.email, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/admin/"+tc.email, nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected 200, got %d", resp.StatusCode)
			}

			var body struct {
				Admin bool `json:"admin"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if body.Admin != tc.want {
				t.Fatalf("expected admin=%v for %s, got %v", tc.want, tc.email, body.Admin)
			}
		})
	}
}

func TestCheckTrainerReportsStoredRole(t *testing.T) {
	directory := &stubRoleDirectory{users: map[string]*models.User{
		"trainer@example.com": {Email: "trainer@example.com", Role: "trainer"},
	}}
	handler := NewAuthHandler(&stubUserAccountService{}, directory, "secret")

	app := fiber.New()
	app.Get("/from-users/trainer/:email", withCallerEmail("trainer@example.com"), handler.CheckTrainer)

	req := httptest.NewRequest(http.MethodGet, "/from-users/trainer/trainer@example.com", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Trainer bool `json:"trainer"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !body.Trainer {
		t.Fatalf("expected trainer=true")
	}
}
