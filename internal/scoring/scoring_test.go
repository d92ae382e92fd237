package scoring

import (
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/vkuznet/mlservices/internal/model"
	"github.com/vkuznet/mlservices/internal/server"
)

type fakeRegressor struct {
	value float64
	err   error
	calls int
	input []float64
}

func (f *fakeRegressor) Predict(x []float64) (float64, error) {
	f.calls++
	f.input = x
	return f.value, f.err
}

// helper function to post request to predict end-point of given service
func predict(svc *Service, body string) *httptest.ResponseRecorder {
	router := server.Router(&server.Service{Name: Name, Routes: svc.Routes()})
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestPredictHandler
func TestPredictHandler(t *testing.T) {
	fake := &fakeRegressor{value: 7.8}
	w := predict(New(fake), `{"horas_estudo": 5.0}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
	}
	if body := strings.TrimSpace(w.Body.String()); body != `{"pontuacao_teste":7}` {
		t.Errorf("unexpected response %s", body)
	}
	if len(fake.input) != 1 || fake.input[0] != 5.0 {
		t.Errorf("model received wrong input %v", fake.input)
	}
}

// TestPredictTruncation
func TestPredictTruncation(t *testing.T) {
	tests := []struct {
		value float64
		score int
	}{
		{7.8, 7},
		{7.1, 7},
		{7.0, 7},
		{0.99, 0},
		{-0.5, 0},
		{-7.8, -7},
		{93.999, 93},
	}
	for _, tt := range tests {
		svc := New(&fakeRegressor{value: tt.value})
		score, err := svc.Predict(1)
		if err != nil {
			t.Fatal(err)
		}
		if score != tt.score {
			t.Errorf("prediction %v gives score %d, expected %d", tt.value, score, tt.score)
		}
	}
}

// TestPredictValidation checks that invalid requests never reach the model
func TestPredictValidation(t *testing.T) {
	bodies := []string{
		`{}`,
		``,
		`{"horas_estudo": null}`,
		`{"horas_estudo": "cinco"}`,
		`{"hours": 5}`,
		`[5]`,
	}
	for _, body := range bodies {
		fake := &fakeRegressor{value: 1}
		w := predict(New(fake), body)
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("body %q: expected 422, got %d", body, w.Code)
		}
		if fake.calls != 0 {
			t.Errorf("body %q: model was called", body)
		}
		var rec server.HTTPError
		if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
			t.Errorf("body %q: invalid json %v", body, err)
		}
		if rec.Code != server.ValidationFailed {
			t.Errorf("body %q: wrong error code %d", body, rec.Code)
		}
	}
}

// TestPredictModelErrors
func TestPredictModelErrors(t *testing.T) {
	fakes := []*fakeRegressor{
		{err: errors.New("broken model")},
		{value: math.NaN()},
		{value: math.Inf(1)},
	}
	for _, fake := range fakes {
		w := predict(New(fake), `{"horas_estudo": 2}`)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", w.Code)
		}
	}
}

// TestPredictWithArtifact
func TestPredictWithArtifact(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "modelo_pontuacao.json")
	content := `{"kind":"linear_regression","features":["horas_estudo"],"coef":[[9.68]],"intercept":[2.83]}`
	if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := model.LoadRegressor(fname)
	if err != nil {
		t.Fatal(err)
	}
	// 9.68*5 + 2.83 = 51.23
	w := predict(New(m), `{"horas_estudo": 5}`)
	if body := strings.TrimSpace(w.Body.String()); body != `{"pontuacao_teste":51}` {
		t.Errorf("unexpected response %d %s", w.Code, body)
	}
}
