package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

func TestSheetName(t *testing.T) {
	tests := map[string]string{
		"Inventory!A1":  "Inventory",
		"Counts!A:H":    "Counts",
		"Sheet1":        "Sheet1",
		"'My Sheet'!B2": "'My Sheet'",
	}

	for in, want := range tests {
		if got := sheetName(in); got != want {
			t.Errorf("sheetName(%q) = %q, want %q", in, got, want)
		}
	}
}

type recordedCall struct {
	method string
	path   string
	query  map[string]string
	values [][]interface{}
}

// fakeSheetsAPI records Values calls and fails paths containing failOn.
type fakeSheetsAPI struct {
	mu     sync.Mutex
	calls  []recordedCall
	failOn string
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	call := recordedCall{method: r.Method, path: r.URL.Path, query: map[string]string{}}
	for k := range r.URL.Query() {
		call.query[k] = r.URL.Query().Get(k)
	}
	var body sheetsapi.ValueRange
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&body)
	}
	call.values = body.Values

	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if f.failOn != "" && strings.Contains(r.URL.Path, f.failOn) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":500,"message":"backend error"}}`))
		return
	}
	_, _ = w.Write([]byte(`{}`))
}

func newTestRepository(t *testing.T, api *fakeSheetsAPI) *GoogleSheetRepository {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	service, err := sheetsapi.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("sheets.NewService: %v", err)
	}
	return newRepository(service, "sheet-1", zap.NewNop())
}

func TestReplaceTable_ClearsThenWrites(t *testing.T) {
	api := &fakeSheetsAPI{}
	repo := newTestRepository(t, api)

	rows := [][]interface{}{{"id", "name"}, {"P-001", "Fuse"}}
	if err := repo.ReplaceTable(context.Background(), "Inventory!A1", rows); err != nil {
		t.Fatalf("ReplaceTable: %v", err)
	}

	if len(api.calls) != 2 {
		t.Fatalf("expected clear and update, got %d calls: %+v", len(api.calls), api.calls)
	}
	clear, update := api.calls[0], api.calls[1]
	if clear.method != http.MethodPost || !strings.HasSuffix(clear.path, "/spreadsheets/sheet-1/values/Inventory:clear") {
		t.Errorf("unexpected clear call %s %s", clear.method, clear.path)
	}
	if update.method != http.MethodPut || !strings.HasSuffix(update.path, "/values/Inventory!A1") {
		t.Errorf("unexpected update call %s %s", update.method, update.path)
	}
	if update.query["valueInputOption"] != "RAW" {
		t.Errorf("valueInputOption = %q, want RAW", update.query["valueInputOption"])
	}
	if len(update.values) != 2 || update.values[1][0] != "P-001" {
		t.Errorf("unexpected values written: %v", update.values)
	}
}

func TestReplaceTable_Errors(t *testing.T) {
	api := &fakeSheetsAPI{failOn: ":clear"}
	repo := newTestRepository(t, api)

	err := repo.ReplaceTable(context.Background(), "Inventory!A1", [][]interface{}{{"id"}})
	if err == nil || !strings.Contains(err.Error(), "clear sheet Inventory") {
		t.Fatalf("expected clear failure, got %v", err)
	}
	if len(api.calls) != 1 {
		t.Errorf("update must not run after a failed clear, got %d calls", len(api.calls))
	}

	if err := repo.ReplaceTable(context.Background(), "", nil); err == nil {
		t.Error("expected error for empty range")
	}
}

func TestAppendRows(t *testing.T) {
	api := &fakeSheetsAPI{}
	repo := newTestRepository(t, api)
	ctx := context.Background()

	if err := repo.AppendRows(ctx, "Counts!A:H", nil); err != nil {
		t.Fatalf("AppendRows with no rows: %v", err)
	}
	if len(api.calls) != 0 {
		t.Fatalf("expected no call for empty rows, got %d", len(api.calls))
	}

	rows := [][]interface{}{{"2025-03-14T08:00:00Z", "c1", "V-1", "somchai", "P-001", 4, 3, -1}}
	if err := repo.AppendRows(ctx, "Counts!A:H", rows); err != nil {
		t.Fatalf("AppendRows: %v", err)
	}
	if len(api.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(api.calls))
	}
	call := api.calls[0]
	if call.method != http.MethodPost || !strings.HasSuffix(call.path, "/values/Counts!A:H:append") {
		t.Errorf("unexpected append call %s %s", call.method, call.path)
	}
	if call.query["valueInputOption"] != "USER_ENTERED" || call.query["insertDataOption"] != "INSERT_ROWS" {
		t.Errorf("unexpected append options %v", call.query)
	}
	if len(call.values) != 1 || call.values[0][1] != "c1" {
		t.Errorf("unexpected appended values %v", call.values)
	}

	api.failOn = ":append"
	if err := repo.AppendRows(ctx, "Counts!A:H", rows); err == nil || !strings.Contains(err.Error(), "append rows into range Counts!A:H") {
		t.Errorf("expected append failure, got %v", err)
	}
}
