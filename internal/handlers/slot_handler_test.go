package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/Marufhossain07/fit-sync-backend/internal/models"
	"github.com/Marufhossain07/fit-sync-backend/internal/repository"
	"github.com/Marufhossain07/fit-sync-backend/internal/services"
)

type stubSlotWorkflowService struct {
	publishInput  repository.CreateSlotInput
	publishCalls  int
	publishErr    error
	withdrawnID   int64
	withdrawEmail string
	withdrawErr   error
}

func (s *stubSlotWorkflowService) PublishSlot(_ context.Context, input repository.CreateSlotInput) (*models.Slot, error) {
	s.publishCalls++
	s.publishInput = input
	if s.publishErr != nil {
		return nil, s.publishErr
	}
	return &models.Slot{
		ID:           3,
		TrainerEmail: input.TrainerEmail,
		SlotName:     input.SlotName,
		SlotTime:     input.SlotTime,
		ClassName:    input.ClassName,
		BookedBy:     models.SlotUnbooked,
	}, nil
}

func (s *stubSlotWorkflowService) WithdrawSlot(_ context.Context, slotID int64, trainerEmail string) error {
	s.withdrawnID = slotID
	s.withdrawEmail = trainerEmail
	return s.withdrawErr
}

type stubSlotReader struct {
	byID      map[int64]*models.Slot
	all       []models.Slot
	available []models.Slot
}

func (s *stubSlotReader) GetByID(_ context.Context, id int64) (*models.Slot, error) {
	slot, ok := s.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return slot, nil
}

func (s *stubSlotReader) ListByTrainer(_ context.Context, _ string) ([]models.Slot, error) {
	return s.all, nil
}

func (s *stubSlotReader) ListAvailableByTrainer(_ context.Context, _ string) ([]models.Slot, error) {
	return s.available, nil
}

func TestPublishCreatesSlotForCaller(t *testing.T) {
	service := &stubSlotWorkflowService{}
	handler := NewSlotHandler(service, &stubSlotReader{})

	app := fiber.New()
	app.Post("/slot", withCallerEmail("coach@example.com"), handler.Publish)

	req := httptest.NewRequest(http.MethodPost, "/slot",
		strings.NewReader(`{"email":"coach@example.com","slot_name":"Morning Flow","slot_time":"06:00-07:00","class_name":"Yoga"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if service.publishInput.TrainerEmail != "coach@example.com" || service.publishInput.SlotName != "Morning Flow" {
		t.Fatalf("unexpected publish input: %+v", service.publishInput)
	}

	var body struct {
		Slot models.Slot `json:"slot"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if body.Slot.BookedBy != models.SlotUnbooked {
		t.Fatalf("expected new slot unbooked, got %q", body.Slot.BookedBy)
	}
}

func TestPublishRejectsForeignEmail(t *testing.T) {
	service := &stubSlotWorkflowService{}
	handler := NewSlotHandler(service, &stubSlotReader{})

	app := fiber.New()
	app.Post("/slot", withCallerEmail("coach@example.com"), handler.Publish)

	req := httptest.NewRequest(http.MethodPost, "/slot",
		strings.NewReader(`{"email":"other@example.com","slot_name":"Morning Flow","slot_time":"06:00-07:00"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
	if service.publishCalls != 0 {
		t.Fatalf("expected no service call, got %d", service.publishCalls)
	}
}

func TestWithdrawChecksOwnershipAndForwardsCall(t *testing.T) {
	service := &stubSlotWorkflowService{}
	handler := NewSlotHandler(service, &stubSlotReader{})

	app := fiber.New()
	app.Delete("/slot/:id/:email", withCallerEmail("coach@example.com"), handler.Withdraw)

	req := httptest.NewRequest(http.MethodDelete, "/slot/9/coach@example.com", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if service.withdrawnID != 9 || service.withdrawEmail != "coach@example.com" {
		t.Fatalf("unexpected withdraw call: id=%d email=%q", service.withdrawnID, service.withdrawEmail)
	}

	foreign := httptest.NewRequest(http.MethodDelete, "/slot/9/other@example.com", nil)
	resp, err = app.Test(foreign)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 for foreign email, got %d", resp.StatusCode)
	}
}

func TestWithdrawMapsServiceErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not the owner", services.ErrForbidden, http.StatusForbidden},
		{"missing slot", services.ErrSlotNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := &stubSlotWorkflowService{withdrawErr: tc.err}
			handler := NewSlotHandler(service, &stubSlotReader{})

			app := fiber.New()
			app.Delete("/slot/:id/:email", withCallerEmail("coach@example.com"), handler.Withdraw)

			req := httptest.NewRequest(http.MethodDelete, "/slot/9/coach@example.com", nil)
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, resp.StatusCode)
			}
		})
	}
}

func TestGetByIDReturnsSlotOr404(t *testing.T) {
	reader := &stubSlotReader{byID: map[int64]*models.Slot{
		4: {ID: 4, TrainerEmail: "coach@example.com", SlotName: "Evening Lift", BookedBy: models.SlotUnbooked},
	}}
	handler := NewSlotHandler(&stubSlotWorkflowService{}, reader)

	app := fiber.New()
	app.Get("/book-slot/:id", handler.GetByID)

	req := httptest.NewRequest(http.MethodGet, "/book-slot/4", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	missing := httptest.NewRequest(http.MethodGet, "/book-slot/99", nil)
	resp, err = app.Test(missing)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestListAvailableReturnsOnlyUnbooked(t *testing.T) {
	reader := &stubSlotReader{available: []models.Slot{
		{ID: 1, TrainerEmail: "coach@example.com", BookedBy: models.SlotUnbooked},
	}}
	handler := NewSlotHandler(&stubSlotWorkflowService{}, reader)

	app := fiber.New()
	app.Get("/available-slots/:email", handler.ListAvailable)

	req := httptest.NewRequest(http.MethodGet, "/available-slots/coach@example.com", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Slots []models.Slot `json:"slots"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(body.Slots) != 1 || body.Slots[0].BookedBy != models.SlotUnbooked {
		t.Fatalf("unexpected slots: %+v", body.Slots)
	}
}
