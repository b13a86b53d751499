package solve

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/algotutor.net/internal/adapter/logging"
	"gitlab.com/algotutor.net/internal/domain"
	"gitlab.com/algotutor.net/internal/handlers"
	"gitlab.com/algotutor.net/internal/static/errs"
)

type fakeSolveService struct {
	requests []*domain.SolveRequest
	result   *domain.SolveResult
	usage    domain.QuotaUsage
	usageErr error
}

func (f *fakeSolveService) Solve(_ context.Context, req *domain.SolveRequest) *domain.SolveResult {
	f.requests = append(f.requests, req)
	res := *f.result
	res.RequestID = req.RequestID
	res.Language = req.Language
	return &res
}

func (f *fakeSolveService) Quota(context.Context) (domain.QuotaUsage, error) {
	return f.usage, f.usageErr
}

func (f *fakeSolveService) Categories() []domain.Category {
	return []domain.Category{domain.CategoryBFS, domain.CategorySQLSelect}
}

func newRouter(svc *fakeSolveService) *mux.Router {
	logger := logging.NewNopLogger()
	r := mux.NewRouter()
	r.Use(handlers.New(logger).RequestID)
	NewSolveHandler(svc, logger).RegisterRoutes(r)
	return r
}

func okResult() *domain.SolveResult {
	return &domain.SolveResult{
		Category:        domain.CategoryBFS,
		Result:          "print('<bfs>')",
		Complexity:      errs.MsgComplexity("O(V+E)", "O(V)"),
		Lint:            errs.MsgLintPlaceholder,
		SimulatedOutput: errs.MsgNoTestInput,
		JDoodleOutput:   errs.MsgNoTestInput,
		Stage:           domain.StageResponded,
	}
}

func TestIndex_RendersForm(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(&fakeSolveService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, `name="description"`)
	assert.Contains(t, body, `<option value="Python" selected>`)
	assert.Contains(t, body, "內建模板：bfs、sql_select")
}

func TestSubmitForm_RendersResultEscaped(t *testing.T) {
	svc := &fakeSolveService{result: okResult()}
	form := url.Values{"description": {"bfs"}, "language": {"Java"}, "test_input": {""}}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.requests, 1)
	assert.Equal(t, "Java", svc.requests[0].Language)

	body := rec.Body.String()
	assert.Contains(t, body, "print(&#39;&lt;bfs&gt;&#39;)")
	assert.Contains(t, body, `<option value="Java" selected>`)
	assert.Contains(t, body, errs.MsgLintPlaceholder)
}

func TestSubmitForm_ShowsValidationError(t *testing.T) {
	svc := &fakeSolveService{result: &domain.SolveResult{
		ErrorMessage: errs.MsgDescriptionRequired,
		Stage:        domain.StageErrored,
	}}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("description="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), errs.MsgDescriptionRequired)
	assert.Equal(t, domain.DefaultLanguage, svc.requests[0].Language)
}

func TestSolveAPI_JSON(t *testing.T) {
	svc := &fakeSolveService{result: okResult()}

	req := httptest.NewRequest(http.MethodPost, "/api/solve",
		strings.NewReader(`{"description":"bfs","language":"C++","test_input":"1 2"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.requests, 1)
	assert.Equal(t, "bfs", svc.requests[0].Description)
	assert.Equal(t, "C++", svc.requests[0].Language)
	assert.Equal(t, "1 2", svc.requests[0].TestInput)

	var got map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "bfs", got["category"])
	assert.Equal(t, "RESPONDED", got["stage"])
	assert.Equal(t, false, got["quota_exceeded"])
	assert.Equal(t, rec.Header().Get(handlers.RequestIDHeader), got["request_id"])
}

func TestSolveAPI_Form(t *testing.T) {
	svc := &fakeSolveService{result: okResult()}

	req := httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader("description=dfs&test_input=3"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "dfs", svc.requests[0].Description)
	assert.Equal(t, "3", svc.requests[0].TestInput)
}

func TestSolveAPI_BadJSON(t *testing.T) {
	svc := &fakeSolveService{result: okResult()}

	req := httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader(`{"description":`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.requests)
}

func TestSolveAPI_UsesRequestIDHeader(t *testing.T) {
	svc := &fakeSolveService{result: okResult()}
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader(`{"description":"bfs"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(handlers.RequestIDHeader, id.String())
	newRouter(svc).ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, id, svc.requests[0].RequestID)
}

func TestQuotaAPI(t *testing.T) {
	svc := &fakeSolveService{usage: domain.NewQuotaUsage("2025-03-01", 5, 200)}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quota", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"date":"2025-03-01","used":5,"limit":200,"remaining":195}`, rec.Body.String())
}

func TestQuotaAPI_StoreDown(t *testing.T) {
	svc := &fakeSolveService{usageErr: errors.New("redis down")}

	rec := httptest.NewRecorder()
	newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/quota", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
