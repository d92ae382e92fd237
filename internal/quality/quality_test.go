package quality

import (
	"errors"
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

const sample = `{"A_id": 42, "Size": 1.1, "Weight": 2.2, "Sweetness": 3.3, "Crunchiness": 4.4,
	"Juiciness": 5.5, "Ripeness": 6.6, "Acidity": 7.7}`

type fakeClassifier struct {
	class int
	proba []float64
	err   error
	calls int
	input []float64
}

func (f *fakeClassifier) Predict(x []float64) (int, error) {
	f.calls++
	f.input = x
	return f.class, f.err
}

func (f *fakeClassifier) PredictProba(x []float64) ([]float64, error) {
	return f.proba, f.err
}

// helper function to post request to classify end-point of given service
func classify(svc *Service, body string) *httptest.ResponseRecorder {
	router := server.Router(&server.Service{Name: Name, Routes: svc.Routes()})
	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// helper function to decode classify response
func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var rec Response
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec
}

// TestClassifyHandler
func TestClassifyHandler(t *testing.T) {
	tests := []struct {
		class int
		proba []float64
		label string
		prob  float64
	}{
		{1, []float64{0.2, 0.8}, Good, 0.8},
		{0, []float64{0.65, 0.35}, Bad, 0.65},
		{1, []float64{0.45, 0.55}, Good, 0.55},
	}
	for _, tt := range tests {
		fake := &fakeClassifier{class: tt.class, proba: tt.proba}
		w := classify(New(fake), sample)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d %s", w.Code, w.Body.String())
		}
		rec := decode(t, w)
		if rec.Qualidade != tt.label || rec.Probabilidade != tt.prob {
			t.Errorf("class %d: unexpected response %+v", tt.class, rec)
		}
	}
}

// TestFeatureOrder checks that A_id is dropped and features keep their order
func TestFeatureOrder(t *testing.T) {
	fake := &fakeClassifier{class: 1, proba: []float64{0.1, 0.9}}
	classify(New(fake), sample)
	expect := []float64{1.1, 2.2, 3.3, 4.4, 5.5, 6.6, 7.7}
	if len(fake.input) != len(expect) {
		t.Fatalf("wrong input %v", fake.input)
	}
	for i := range expect {
		if fake.input[i] != expect[i] {
			t.Errorf("feature %s has value %v, expected %v", Features[i], fake.input[i], expect[i])
		}
	}
}

// TestLabel
func TestLabel(t *testing.T) {
	for class, label := range map[int]string{1: Good, 0: Bad, 2: Bad, -1: Bad} {
		if Label(class) != label {
			t.Errorf("class %d has label %s, expected %s", class, Label(class), label)
		}
	}
}

// TestClassifyValidation checks that invalid requests never reach the model
func TestClassifyValidation(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"Size": 1, "Weight": 2, "Sweetness": 3, "Crunchiness": 4, "Juiciness": 5, "Ripeness": 6, "Acidity": 7}`,
		`{"A_id": 1, "Size": 1, "Weight": 2, "Sweetness": 3, "Crunchiness": 4, "Juiciness": 5, "Ripeness": 6}`,
		`{"A_id": 1.5, "Size": 1, "Weight": 2, "Sweetness": 3, "Crunchiness": 4, "Juiciness": 5, "Ripeness": 6, "Acidity": 7}`,
		`{"A_id": 1, "Size": "big", "Weight": 2, "Sweetness": 3, "Crunchiness": 4, "Juiciness": 5, "Ripeness": 6, "Acidity": 7}`,
	}
	for _, body := range bodies {
		fake := &fakeClassifier{class: 1, proba: []float64{0, 1}}
		w := classify(New(fake), body)
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("body %s: expected 422, got %d", body, w.Code)
		}
		if fake.calls != 0 {
			t.Errorf("body %s: model was called", body)
		}
	}
}

// TestClassifyModelErrors
func TestClassifyModelErrors(t *testing.T) {
	fakes := []*fakeClassifier{
		{err: errors.New("broken model")},
		{class: 2, proba: []float64{0.3, 0.7}},
		{class: -1, proba: []float64{0.3, 0.7}},
	}
	for _, fake := range fakes {
		w := classify(New(fake), sample)
		if w.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", w.Code)
		}
	}
}

// TestCheckFeatures
func TestCheckFeatures(t *testing.T) {
	if err := CheckFeatures(7, nil); err != nil {
		t.Error(err)
	}
	if err := CheckFeatures(7, Features); err != nil {
		t.Error(err)
	}
	if err := CheckFeatures(6, nil); err == nil {
		t.Error("wrong number of features should fail")
	}
	swapped := []string{"Weight", "Size", "Sweetness", "Crunchiness", "Juiciness", "Ripeness", "Acidity"}
	if err := CheckFeatures(7, swapped); err == nil {
		t.Error("wrong feature order should fail")
	}
}

// TestClassifyWithArtifact checks that returned probability always belongs
// to the predicted class
func TestClassifyWithArtifact(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "modelo_qualidade_frutas.json")
	content := `{"kind":"logistic_regression",
		"features":["Size","Weight","Sweetness","Crunchiness","Juiciness","Ripeness","Acidity"],
		"classes":[0,1],"coef":[[0.5,0.2,0.6,0.1,0.4,-0.3,0.05]],"intercept":[-0.1]}`
	if err := os.WriteFile(fname, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := model.LoadClassifier(fname)
	if err != nil {
		t.Fatal(err)
	}
	if err := CheckFeatures(m.NumFeatures(), m.Features()); err != nil {
		t.Fatal(err)
	}
	svc := New(m)
	samples := [][]float64{
		{1, 1, 1, 1, 1, 1, 1},
		{-3, -2, -4, 0, -1, 2, 0},
		{0, 0, 0, 0, 0, 0, 0},
	}
	for _, x := range samples {
		rec, err := svc.Classify(x)
		if err != nil {
			t.Fatal(err)
		}
		class, _ := m.Predict(x)
		proba, _ := m.PredictProba(x)
		if rec.Probabilidade != proba[class] || rec.Qualidade != Label(class) {
			t.Errorf("sample %v: response %+v does not match class %d proba %v", x, rec, class, proba)
		}
		if rec.Probabilidade < 0.5 {
			t.Errorf("sample %v: predicted class has probability %v", x, rec.Probabilidade)
		}
	}
}
