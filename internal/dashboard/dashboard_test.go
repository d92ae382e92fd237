package dashboard

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/vkuznet/mlservices/internal/dataset"
	"github.com/vkuznet/mlservices/internal/server"
)

const laptops = `model,cluster,price
X1,0,3000
X2,0,3500
X3,1,9000
`

// helper function to create dashboard router for given csv content
func testRouter(t *testing.T, content string) http.Handler {
	t.Helper()
	data, err := dataset.Parse(strings.NewReader(content), 16)
	if err != nil {
		t.Fatal(err)
	}
	svc := New(data)
	return server.Router(&server.Service{Name: Name, Title: Title, Routes: svc.Routes()})
}

// helper function to perform GET request
func get(h http.Handler, path, accept string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// helper function to decode recommendation
func decode(t *testing.T, w *httptest.ResponseRecorder) Recommendation {
	t.Helper()
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}
	var rec Recommendation
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec
}

// TestRecommendHandler
func TestRecommendHandler(t *testing.T) {
	router := testRouter(t, laptops)
	rec := decode(t, get(router, "/recommend?model=X1", ""))
	if rec.Model != "X1" || rec.Cluster != "0" {
		t.Errorf("unexpected recommendation %+v", rec)
	}
	if len(rec.Rows) != 2 || rec.Rows[0][0] != "X1" || rec.Rows[1][0] != "X2" {
		t.Errorf("unexpected rows %v", rec.Rows)
	}
	if strings.Join(rec.Columns, ",") != "model,cluster,price" {
		t.Errorf("unexpected columns %v", rec.Columns)
	}

	rec = decode(t, get(router, "/recommend?model=X3", ""))
	if len(rec.Rows) != 1 || rec.Rows[0][0] != "X3" {
		t.Errorf("unexpected rows %v", rec.Rows)
	}
}

// TestRecommendLookupMiss
func TestRecommendLookupMiss(t *testing.T) {
	router := testRouter(t, laptops)
	w := get(router, "/recommend?model=Z9", "")
	rec := decode(t, w)
	if len(rec.Rows) != 0 || rec.Cluster != "" {
		t.Errorf("unexpected recommendation %+v", rec)
	}
	if !strings.Contains(w.Body.String(), `"rows":[]`) {
		t.Errorf("rows should be empty list: %s", w.Body.String())
	}

	w = get(router, "/recommend", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

// TestModelsHandler
func TestModelsHandler(t *testing.T) {
	w := get(testRouter(t, laptops+"X1,1,100\n"), "/models", "")
	var models []string
	if err := json.Unmarshal(w.Body.Bytes(), &models); err != nil {
		t.Fatal(err)
	}
	if strings.Join(models, ",") != "X1,X2,X3" {
		t.Errorf("unexpected models %v", models)
	}

	w = get(testRouter(t, "model,cluster\n"), "/models", "")
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("unexpected models %s", body)
	}
}

// TestIndexHandler
func TestIndexHandler(t *testing.T) {
	router := testRouter(t, laptops)

	// first model is selected by default
	rec := decode(t, get(router, "/", "application/json"))
	if rec.Model != "X1" || len(rec.Rows) != 2 {
		t.Errorf("unexpected default selection %+v", rec)
	}

	w := get(router, "/?model=X3", "text/html")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	page := w.Body.String()
	for _, s := range []string{"Filtros", "Selecionar Modelo", Title, `<option value="X3" selected>`, "<td>9000</td>"} {
		if !strings.Contains(page, s) {
			t.Errorf("page does not contain %q", s)
		}
	}
	if strings.Contains(page, "<td>3500</td>") {
		t.Error("page contains rows from other cluster")
	}
}

// TestIndexEmptyDataset
func TestIndexEmptyDataset(t *testing.T) {
	router := testRouter(t, "model,cluster\n")
	w := get(router, "/", "text/html")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "<table") {
		t.Error("empty dataset should not render table")
	}
}
