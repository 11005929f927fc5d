package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pigmento/models"
)

func listCustomerCodes(t *testing.T, ctx context.Context) []string {
	t.Helper()
	customers, _, err := repository.Customers(ctx)
	if err != nil {
		t.Fatalf("list customers: %v", err)
	}
	codes := make([]string, 0, len(customers))
	for _, customer := range customers {
		codes = append(codes, customer.Code)
	}
	return codes
}

func TestCustomerResourceRequiresAuthentication(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, repoCleanup := withTestRepository(t)
	t.Cleanup(repoCleanup)

	req := httptest.NewRequest(http.MethodGet, "/app/api/customers", nil)
	ctx, err := sm.Load(req.Context(), "")
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	req = req.WithContext(ctx)

	w := httptest.NewRecorder()
	CustomerResource(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", w.Code)
	}
}

func TestCustomerResourceListAndCreate(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, repoCleanup := withTestRepository(t)
	t.Cleanup(repoCleanup)

	ctx := authedContext(t, sm)

	req := httptest.NewRequest(http.MethodGet, "/app/api/customers", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	CustomerResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list returned %d: %s", w.Code, w.Body.String())
	}

	var listed struct {
		Items []models.Customer `json:"items"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Items) == 0 {
		t.Fatal("expected seeded customers")
	}

	body := strings.NewReader(`{"code":"ARTEX","short_name":"Artex Moulding"}`)
	req = httptest.NewRequest(http.MethodPost, "/app/api/customers", body).WithContext(ctx)
	w = httptest.NewRecorder()
	CustomerResource(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}

	// duplicate code is refused and does not add a row
	before := listCustomerCodes(t, ctx)
	body = strings.NewReader(`{"code":" ARTEX ","short_name":"Duplicate"}`)
	req = httptest.NewRequest(http.MethodPost, "/app/api/customers", body).WithContext(ctx)
	w = httptest.NewRecorder()
	CustomerResource(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate create returned %d: %s", w.Code, w.Body.String())
	}
	if after := listCustomerCodes(t, ctx); len(after) != len(before) {
		t.Fatalf("duplicate create changed row count: %d -> %d", len(before), len(after))
	}

	// blank identifier is refused
	body = strings.NewReader(`{"code":"   "}`)
	req = httptest.NewRequest(http.MethodPost, "/app/api/customers", body).WithContext(ctx)
	w = httptest.NewRecorder()
	CustomerResource(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank create returned %d: %s", w.Code, w.Body.String())
	}
}

func TestCustomerResourceUpdateByRow(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, repoCleanup := withTestRepository(t)
	t.Cleanup(repoCleanup)

	ctx := authedContext(t, sm)

	body := strings.NewReader(`{"code":"NORFIL","short_name":"Norfil Plastics AB"}`)
	req := httptest.NewRequest(http.MethodPut, "/app/api/customers/0", body).WithContext(ctx)
	w := httptest.NewRecorder()
	CustomerResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update returned %d: %s", w.Code, w.Body.String())
	}

	customers, _, err := repository.Customers(ctx)
	if err != nil {
		t.Fatalf("reload customers: %v", err)
	}
	if customers[0].ShortName != "Norfil Plastics AB" {
		t.Fatalf("row 0 short name = %q", customers[0].ShortName)
	}

	req = httptest.NewRequest(http.MethodPut, "/app/api/customers/99", strings.NewReader(`{"code":"X"}`)).WithContext(ctx)
	w = httptest.NewRecorder()
	CustomerResource(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("out-of-range update returned %d", w.Code)
	}
}

func TestCustomerResourceDeleteConfirmFlow(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, repoCleanup := withTestRepository(t)
	t.Cleanup(repoCleanup)

	ctx := authedContext(t, sm)
	before := listCustomerCodes(t, ctx)

	// first DELETE only marks the row for confirmation
	req := httptest.NewRequest(http.MethodDelete, "/app/api/customers/0", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	CustomerResource(w, req)
	if w.Code != http.StatusAccepted {
		t.Fatalf("first delete returned %d: %s", w.Code, w.Body.String())
	}
	if codes := listCustomerCodes(t, ctx); len(codes) != len(before) {
		t.Fatal("unconfirmed delete must not remove rows")
	}

	// cancel clears the pending state and leaves the table unchanged
	req = httptest.NewRequest(http.MethodDelete, "/app/api/customers/0?cancel=1", nil).WithContext(ctx)
	w = httptest.NewRecorder()
	CustomerResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel returned %d", w.Code)
	}
	if codes := listCustomerCodes(t, ctx); len(codes) != len(before) {
		t.Fatal("cancelled delete must not remove rows")
	}

	// confirm without a pending mark re-arms instead of deleting
	req = httptest.NewRequest(http.MethodDelete, "/app/api/customers/0?confirm=1", nil).WithContext(ctx)
	w = httptest.NewRecorder()
	CustomerResource(w, req)
	if w.Code != http.StatusAccepted {
		t.Fatalf("confirm without pending returned %d", w.Code)
	}

	// a matching confirm removes exactly one row and re-indexes the rest
	req = httptest.NewRequest(http.MethodDelete, "/app/api/customers/0?confirm=1", nil).WithContext(ctx)
	w = httptest.NewRecorder()
	CustomerResource(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("confirmed delete returned %d: %s", w.Code, w.Body.String())
	}

	after := listCustomerCodes(t, ctx)
	if len(after) != len(before)-1 {
		t.Fatalf("expected %d rows after delete, got %d", len(before)-1, len(after))
	}
	if after[0] != before[1] {
		t.Fatalf("expected row re-index, first row = %q, want %q", after[0], before[1])
	}
}

func TestDraftResourceRoundTrip(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, repoCleanup := withTestRepository(t)
	t.Cleanup(repoCleanup)

	ctx := authedContext(t, sm)

	body := strings.NewReader(`{"values":{"code":"125","color_name":"Brick Red"},"selected_row":0,"cursor":2}`)
	req := httptest.NewRequest(http.MethodPut, "/app/api/drafts/recipes", body).WithContext(ctx)
	w := httptest.NewRecorder()
	DraftResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("save draft returned %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/app/api/drafts/recipes", nil).WithContext(ctx)
	w = httptest.NewRecorder()
	DraftResource(w, req)

	var draft draftPayload
	if err := json.Unmarshal(w.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	if draft.Values["color_name"] != "Brick Red" {
		t.Fatalf("draft values = %v", draft.Values)
	}
	if draft.SelectedRow == nil || *draft.SelectedRow != 0 {
		t.Fatalf("draft selected row = %v", draft.SelectedRow)
	}
	if draft.Cursor == nil || *draft.Cursor != 2 {
		t.Fatalf("draft cursor = %v", draft.Cursor)
	}

	req = httptest.NewRequest(http.MethodDelete, "/app/api/drafts/recipes", nil).WithContext(ctx)
	w = httptest.NewRecorder()
	DraftResource(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("reset draft returned %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/app/api/drafts/recipes", nil).WithContext(ctx)
	w = httptest.NewRecorder()
	DraftResource(w, req)
	draft = draftPayload{}
	if err := json.Unmarshal(w.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decode draft after reset: %v", err)
	}
	if len(draft.Values) != 0 || draft.SelectedRow != nil {
		t.Fatalf("expected empty draft after reset, got %+v", draft)
	}

	req = httptest.NewRequest(http.MethodGet, "/app/api/drafts/unknown", nil).WithContext(ctx)
	w = httptest.NewRecorder()
	DraftResource(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown entity returned %d", w.Code)
	}
}

func TestCreateMutationResetsSessionFormState(t *testing.T) {
	sm, smCleanup := withTestSessionManager(t)
	t.Cleanup(smCleanup)
	_, repoCleanup := withTestRepository(t)
	t.Cleanup(repoCleanup)

	ctx := authedContext(t, sm)

	body := strings.NewReader(`{"values":{"code":"PENDING"}}`)
	req := httptest.NewRequest(http.MethodPut, "/app/api/drafts/customers", body).WithContext(ctx)
	w := httptest.NewRecorder()
	DraftResource(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("save draft returned %d", w.Code)
	}

	create := strings.NewReader(`{"code":"PENDING","short_name":"Pending Works"}`)
	req = httptest.NewRequest(http.MethodPost, "/app/api/customers", create).WithContext(ctx)
	w = httptest.NewRecorder()
	CustomerResource(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create returned %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/app/api/drafts/customers", nil).WithContext(ctx)
	w = httptest.NewRecorder()
	DraftResource(w, req)

	var draft draftPayload
	if err := json.Unmarshal(w.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	if len(draft.Values) != 0 {
		t.Fatalf("expected draft cleared after successful create, got %v", draft.Values)
	}
}
