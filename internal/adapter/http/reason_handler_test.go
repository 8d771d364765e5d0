package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/restodesk/backoffice/internal/adapter/logger"
	"github.com/restodesk/backoffice/internal/domain"
	"github.com/restodesk/backoffice/internal/interfaces"
)

type fakeReasonService struct {
	reasons    []*domain.Reason
	created    *interfaces.CreateReasonCommand
	updated    *interfaces.UpdateReasonCommand
	err        error
	lastLimit  int
	lastPage   int
	activeOnly bool
}

func (f *fakeReasonService) Create(_ context.Context, restaurantID uuid.UUID, cmd interfaces.CreateReasonCommand) (*domain.Reason, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = &cmd
	return domain.NewReason(restaurantID, domain.ReasonType(cmd.ReasonType), cmd.ReasonText, cmd.CreatedBy)
}

func (f *fakeReasonService) List(_ context.Context, _ uuid.UUID, _ string, activeOnly bool) ([]*domain.Reason, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.activeOnly = activeOnly
	return f.reasons, nil
}

func (f *fakeReasonService) ListPaginated(_ context.Context, _ uuid.UUID, _ string, page, limit int) (*interfaces.ReasonPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastPage = page
	f.lastLimit = limit
	return &interfaces.ReasonPage{
		Reasons:    f.reasons,
		Pagination: interfaces.Pagination{Page: page, Limit: limit, TotalCount: len(f.reasons), TotalPages: 1},
	}, nil
}

func (f *fakeReasonService) Update(_ context.Context, _, restaurantID uuid.UUID, cmd interfaces.UpdateReasonCommand) (*domain.Reason, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updated = &cmd
	return domain.NewReason(restaurantID, domain.ReasonTypeRejected, "updated", domain.ActorRestaurant)
}

func authedRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := ContextWithIdentity(r.Context(), uuid.New(), domain.ActorRestaurant)
	return r.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return env
}

func TestCreateReason(t *testing.T) {
	svc := &fakeReasonService{}
	h := NewReasonHandler(svc, 10, logger.NewNop())

	rec := httptest.NewRecorder()
	h.HandleReasons(rec, authedRequest(http.MethodPost, "/action-reasons",
		`{"reasonType":"rejected","reasonText":"Out of stock"}`))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("success = false, want true")
	}
	if svc.created == nil || svc.created.ReasonText != "Out of stock" {
		t.Error("create command not forwarded")
	}
	if svc.created.CreatedBy != domain.ActorRestaurant {
		t.Errorf("createdBy = %s, want restaurant from token", svc.created.CreatedBy)
	}
}

func TestCreateReasonValidationError(t *testing.T) {
	svc := &fakeReasonService{err: domain.NewValidationError("reasonText", "reason text is required")}
	h := NewReasonHandler(svc, 10, logger.NewNop())

	rec := httptest.NewRecorder()
	h.HandleReasons(rec, authedRequest(http.MethodPost, "/action-reasons",
		`{"reasonType":"rejected","reasonText":""}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Error("success = true, want false")
	}
	if !strings.Contains(env.Message, "reasonText") {
		t.Errorf("message %q does not name the failing field", env.Message)
	}
}

func TestListReasonsActiveOnly(t *testing.T) {
	reason, _ := domain.NewReason(uuid.New(), domain.ReasonTypeWaiting, "busy", domain.ActorRestaurant)
	svc := &fakeReasonService{reasons: []*domain.Reason{reason}}
	h := NewReasonHandler(svc, 10, logger.NewNop())

	rec := httptest.NewRecorder()
	h.HandleReasons(rec, authedRequest(http.MethodGet, "/action-reasons?active=true&reasonType=waiting", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !svc.activeOnly {
		t.Error("active=true must request active-only listing")
	}
	env := decodeEnvelope(t, rec)
	if env.Pagination != nil {
		t.Error("active listing must not be paginated")
	}
}

func TestListReasonsPaginated(t *testing.T) {
	svc := &fakeReasonService{}
	h := NewReasonHandler(svc, 10, logger.NewNop())

	rec := httptest.NewRecorder()
	h.HandleReasons(rec, authedRequest(http.MethodGet, "/action-reasons?page=2&limit=5", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.lastPage != 2 || svc.lastLimit != 5 {
		t.Errorf("page/limit = %d/%d, want 2/5", svc.lastPage, svc.lastLimit)
	}
	env := decodeEnvelope(t, rec)
	if env.Pagination == nil {
		t.Fatal("pagination missing from paginated listing")
	}
	if env.Pagination.Page != 2 {
		t.Errorf("pagination.page = %d, want 2", env.Pagination.Page)
	}
}

func TestListReasonsDefaultsPagination(t *testing.T) {
	svc := &fakeReasonService{}
	h := NewReasonHandler(svc, 10, logger.NewNop())

	rec := httptest.NewRecorder()
	h.HandleReasons(rec, authedRequest(http.MethodGet, "/action-reasons", ""))

	if svc.lastPage != 1 || svc.lastLimit != 10 {
		t.Errorf("page/limit = %d/%d, want defaults 1/10", svc.lastPage, svc.lastLimit)
	}
}

func TestListReasonsBadPageParam(t *testing.T) {
	h := NewReasonHandler(&fakeReasonService{}, 10, logger.NewNop())

	rec := httptest.NewRecorder()
	h.HandleReasons(rec, authedRequest(http.MethodGet, "/action-reasons?page=zero", ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateReason(t *testing.T) {
	svc := &fakeReasonService{}
	h := NewReasonHandler(svc, 10, logger.NewNop())

	rec := httptest.NewRecorder()
	h.HandleReasonByID(rec, authedRequest(http.MethodPatch, "/action-reasons/"+uuid.NewString(),
		`{"isActive":false}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if svc.updated == nil || svc.updated.IsActive == nil || *svc.updated.IsActive {
		t.Error("isActive=false not forwarded")
	}
	if svc.updated.ReasonText != nil {
		t.Error("absent reasonText must stay nil")
	}
}

func TestUpdateReasonNotFound(t *testing.T) {
	svc := &fakeReasonService{err: domain.ErrNotFound}
	h := NewReasonHandler(svc, 10, logger.NewNop())

	rec := httptest.NewRecorder()
	h.HandleReasonByID(rec, authedRequest(http.MethodPatch, "/action-reasons/"+uuid.NewString(),
		`{"isActive":false}`))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestUpdateReasonBadID(t *testing.T) {
	h := NewReasonHandler(&fakeReasonService{}, 10, logger.NewNop())

	rec := httptest.NewRecorder()
	h.HandleReasonByID(rec, authedRequest(http.MethodPatch, "/action-reasons/not-a-uuid",
		`{"isActive":false}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReasonsMethodNotAllowed(t *testing.T) {
	h := NewReasonHandler(&fakeReasonService{}, 10, logger.NewNop())

	rec := httptest.NewRecorder()
	h.HandleReasons(rec, authedRequest(http.MethodDelete, "/action-reasons", ""))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}
