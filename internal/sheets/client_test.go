package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pigmento/internal/workbook"
)

func TestNewClientRequiresBaseURL(t *testing.T) {
	t.Parallel()

	if _, err := NewClient(Config{}); err == nil {
		t.Fatal("expected an error without a base URL")
	}
	if _, err := NewClient(Config{BaseURL: "   "}); err == nil {
		t.Fatal("expected an error for a blank base URL")
	}
}

func TestClientLoadParsesPayload(t *testing.T) {
	t.Parallel()

	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(sheetPayload{
			Header:   workbook.CustomerHeader,
			Rows:     [][]string{{"NORFIL", "Norfil Plastics", ""}},
			Revision: 7,
		})
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL + "/", Token: "secret"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	table, err := client.Load(context.Background(), workbook.SheetCustomers)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if gotPath != "/sheets/customers" {
		t.Fatalf("request path = %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Fatalf("authorization header = %q", gotAuth)
	}
	if table.Revision != 7 || table.Cell(0, "code") != "NORFIL" {
		t.Fatalf("unexpected table: %+v", table)
	}
}

func TestClientLoadTreatsNotFoundAsEmptySheet(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	table, err := client.Load(context.Background(), workbook.SheetRecipes)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Sheet != workbook.SheetRecipes || len(table.Rows) != 0 {
		t.Fatalf("expected empty table, got %+v", table)
	}
}

func TestClientLoadServerErrorIsUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Load(context.Background(), workbook.SheetOrders)
	if !errors.Is(err, workbook.ErrSheetUnavailable) {
		t.Fatalf("server error = %v, want ErrSheetUnavailable", err)
	}
}

func TestClientLoadUnreachableHostIsUnavailable(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{BaseURL: "http://127.0.0.1:1"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Load(context.Background(), workbook.SheetStock)
	if !errors.Is(err, workbook.ErrSheetUnavailable) {
		t.Fatalf("connection failure = %v, want ErrSheetUnavailable", err)
	}
}

func TestClientSaveConflictIsStaleRevision(t *testing.T) {
	t.Parallel()

	var gotMethod string
	var gotPayload sheetPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.WriteHeader(http.StatusConflict)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	table := workbook.NewTable(workbook.SheetCustomers, workbook.CustomerHeader)
	table.Revision = 4
	table.Append([]string{"NORFIL", "Norfil Plastics", ""})

	err = client.Save(context.Background(), table)
	if !errors.Is(err, workbook.ErrStaleRevision) {
		t.Fatalf("conflict = %v, want ErrStaleRevision", err)
	}
	if gotMethod != http.MethodPut {
		t.Fatalf("save method = %q", gotMethod)
	}
	if gotPayload.Revision != 4 || len(gotPayload.Rows) != 1 {
		t.Fatalf("save payload = %+v", gotPayload)
	}
}

func TestClientSaveSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Config{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if err := client.Save(context.Background(), workbook.NewTable(workbook.SheetPantone, workbook.PantoneHeader)); err != nil {
		t.Fatalf("Save: %v", err)
	}
}
