package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nerrad567/isox-bridge/internal/classify"
	"github.com/nerrad567/isox-bridge/internal/hub"
	"github.com/nerrad567/isox-bridge/internal/infrastructure/config"
	"github.com/nerrad567/isox-bridge/internal/infrastructure/logging"
	"github.com/nerrad567/isox-bridge/internal/publish"
)

// fakePassSource serves a fixed pass.
type fakePassSource struct {
	pass *classify.Buckets
}

func (f *fakePassSource) LatestPass() *classify.Buckets {
	return f.pass
}

// fakeHistorySource serves canned rows or a canned error.
type fakeHistorySource struct {
	rows []publish.StateRow
	err  error

	gotAddress string
	gotLimit   int
}

func (f *fakeHistorySource) History(_ context.Context, address string, limit int) ([]publish.StateRow, error) {
	f.gotAddress = address
	f.gotLimit = limit
	return f.rows, f.err
}

// testPass builds a small pass with one entity per category.
func testPass() *classify.Buckets {
	status := 255.0
	node := &hub.Node{
		Address:  "11 22 33 1",
		Name:     "Porch Light",
		Protocol: hub.ProtocolInsteon,
		UOM:      "100",
		Status:   &status,
	}
	b := &classify.Buckets{
		PassID:        "pass-1",
		HubID:         "hub-1",
		Nodes:         make(map[classify.Platform][]*hub.Node),
		Programs:      make(map[classify.Platform][]classify.ProgramPair),
		AuxProperties: make(map[classify.Platform][]classify.NodeControl),
		Devices:       make(map[string]classify.DeviceInfo),
	}
	b.Nodes[classify.PlatformLight] = []*hub.Node{node}
	b.AuxProperties[classify.PlatformSensor] = []classify.NodeControl{
		{Node: node, Control: "CLITEMP"},
	}
	b.Groups = []*hub.Group{{Address: "10001", Name: "Evening Scene", AllOn: true}}
	b.Programs[classify.PlatformSwitch] = []classify.ProgramPair{
		{Name: "Garage Heater", Status: &hub.Program{ID: "0041"}},
	}
	b.Variables = []hub.Variable{
		{ID: 14, Type: hub.VariableTypeState, Name: "HA.Mode", Value: 42},
	}
	b.Devices[node.Address] = classify.DeviceInfo{
		Identifier:   "hub-1_11 22 33 1",
		Name:         "Porch Light",
		Manufacturer: "Insteon",
		Model:        "11 22 33 (1.32.65.0)",
	}
	return b
}

// newTestServer builds a server with its router, without a listener.
func newTestServer(t *testing.T, passes PassSource, history HistorySource) http.Handler {
	t.Helper()
	logger := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stderr"}, "test")
	s, err := New(Deps{
		Config:  config.APIConfig{Host: "127.0.0.1", Port: 0},
		Logger:  logger,
		Passes:  passes,
		History: history,
		Version: "test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return s.buildRouter()
}

func doGet(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return body
}

func TestNew_RequiresDependencies(t *testing.T) {
	logger := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stderr"}, "test")

	if _, err := New(Deps{Passes: &fakePassSource{}}); err == nil {
		t.Error("New() without logger should fail")
	}
	if _, err := New(Deps{Logger: logger}); err == nil {
		t.Error("New() without pass source should fail")
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestServer(t, &fakePassSource{}, nil)
	rec := doGet(t, h, "/api/v1/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decode(t, rec)
	if body["status"] != "ok" {
		t.Errorf("status = %v, want ok", body["status"])
	}
}

func TestHandleClassification(t *testing.T) {
	h := newTestServer(t, &fakePassSource{pass: testPass()}, nil)
	rec := doGet(t, h, "/api/v1/classification/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decode(t, rec)
	if body["pass_id"] != "pass-1" || body["hub_id"] != "hub-1" {
		t.Errorf("body = %v", body)
	}
	counts, ok := body["counts"].(map[string]any)
	if !ok {
		t.Fatalf("counts missing: %v", body)
	}
	if counts["light"] != float64(1) || counts["switch"] != float64(2) {
		t.Errorf("counts = %v", counts)
	}
}

func TestHandleClassification_NoPassYet(t *testing.T) {
	h := newTestServer(t, &fakePassSource{}, nil)
	rec := doGet(t, h, "/api/v1/classification/")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestHandleListPlatforms(t *testing.T) {
	h := newTestServer(t, &fakePassSource{pass: testPass()}, nil)
	rec := doGet(t, h, "/api/v1/classification/platforms")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decode(t, rec)
	platforms, ok := body["platforms"].([]any)
	if !ok {
		t.Fatalf("platforms missing: %v", body)
	}
	// light, number, sensor, switch; sorted.
	if len(platforms) != 4 {
		t.Fatalf("platforms = %d entries, want 4", len(platforms))
	}
	first, ok := platforms[0].(map[string]any)
	if !ok || first["platform"] != "light" {
		t.Errorf("first platform = %v, want light", platforms[0])
	}
}

func TestHandlePlatformEntities(t *testing.T) {
	h := newTestServer(t, &fakePassSource{pass: testPass()}, nil)

	tests := []struct {
		platform string
		want     int
	}{
		{"light", 1},
		{"sensor", 1},
		{"switch", 2}, // scene plus program
		{"number", 1},
		{"lock", 0},
	}
	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			rec := doGet(t, h, "/api/v1/classification/platforms/"+tt.platform)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			body := decode(t, rec)
			entities, ok := body["entities"].([]any)
			if !ok {
				t.Fatalf("entities missing: %v", body)
			}
			if len(entities) != tt.want {
				t.Errorf("entities = %d, want %d", len(entities), tt.want)
			}
		})
	}
}

func TestHandlePlatformEntities_UnknownPlatform(t *testing.T) {
	h := newTestServer(t, &fakePassSource{pass: testPass()}, nil)
	rec := doGet(t, h, "/api/v1/classification/platforms/toaster")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleListDevices(t *testing.T) {
	h := newTestServer(t, &fakePassSource{pass: testPass()}, nil)
	rec := doGet(t, h, "/api/v1/classification/devices")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decode(t, rec)
	devices, ok := body["devices"].([]any)
	if !ok || len(devices) != 1 {
		t.Fatalf("devices = %v", body["devices"])
	}
	dev, ok := devices[0].(map[string]any)
	if !ok || dev["manufacturer"] != "Insteon" {
		t.Errorf("device = %v", devices[0])
	}
}

func TestHandleHistory(t *testing.T) {
	source := &fakeHistorySource{
		rows: []publish.StateRow{
			{PassID: "pass-1", Platform: "sensor", Address: "11 22 33 1", State: "21.5"},
		},
	}
	h := newTestServer(t, &fakePassSource{pass: testPass()}, source)

	rec := doGet(t, h, "/api/v1/history?address=11+22+33+1&limit=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if source.gotAddress != "11 22 33 1" || source.gotLimit != 10 {
		t.Errorf("query = (%q, %d), want (11 22 33 1, 10)", source.gotAddress, source.gotLimit)
	}
	body := decode(t, rec)
	rows, ok := body["rows"].([]any)
	if !ok || len(rows) != 1 {
		t.Errorf("rows = %v", body["rows"])
	}
}

func TestHandleHistory_Validation(t *testing.T) {
	source := &fakeHistorySource{}
	h := newTestServer(t, &fakePassSource{pass: testPass()}, source)

	rec := doGet(t, h, "/api/v1/history")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing address: status = %d, want 400", rec.Code)
	}

	rec = doGet(t, h, "/api/v1/history?address=x&limit=nope")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad limit: status = %d, want 400", rec.Code)
	}
}

func TestHandleHistory_Disabled(t *testing.T) {
	h := newTestServer(t, &fakePassSource{pass: testPass()}, nil)
	rec := doGet(t, h, "/api/v1/history?address=x")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHandleHistory_QueryError(t *testing.T) {
	source := &fakeHistorySource{err: errors.New("disk gone")}
	h := newTestServer(t, &fakePassSource{pass: testPass()}, source)
	rec := doGet(t, h, "/api/v1/history?address=x")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}

func TestHandleMetrics(t *testing.T) {
	h := newTestServer(t, &fakePassSource{}, nil)
	rec := doGet(t, h, "/api/v1/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := decode(t, rec)
	if _, ok := body["goroutines"]; !ok {
		t.Errorf("metrics body = %v, want goroutines field", body)
	}
}
