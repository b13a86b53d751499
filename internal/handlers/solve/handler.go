package solve

import (
	"embed"
	"encoding/json"
	"html/template"
	"mime"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/algotutor.net/internal/core/ports/primary"
	solvesvc "gitlab.com/algotutor.net/internal/core/services/solve"
	"gitlab.com/algotutor.net/internal/domain"
	"gitlab.com/algotutor.net/internal/handlers"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// SolveHandler serves the tutor form and its JSON API
type SolveHandler struct {
	solveService solvesvc.ISolveService
	logger       primary.Logger
}

func NewSolveHandler(solveService solvesvc.ISolveService, logger primary.Logger) *SolveHandler {
	return &SolveHandler{
		solveService: solveService,
		logger:       logger,
	}
}

// RegisterRoutes registers the page and API routes for SolveHandler
func (h *SolveHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/", h.Index).Methods("GET")
	router.HandleFunc("/", h.SubmitForm).Methods("POST")
	router.HandleFunc("/api/solve", h.Solve).Methods("POST")
	router.HandleFunc("/api/quota", h.Quota).Methods("GET")
}

func (h *SolveHandler) Index(w http.ResponseWriter, _ *http.Request) {
	h.render(w, pageView{Language: domain.DefaultLanguage, Languages: languages, Categories: h.solveService.Categories()})
}

// SubmitForm runs the form submission and renders the page with the outcome.
// Validation problems are shown on the page, the status stays 200.
func (h *SolveHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.logger.Error("Failed to parse form", "error", err)
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	body := formBody(r)
	result := h.solveService.Solve(r.Context(), h.newRequest(r, body))

	h.render(w, pageView{
		Description: body.Description,
		TestInput:   body.TestInput,
		Language:    result.Language,
		Languages:   languages,
		Categories:  h.solveService.Categories(),
		Result:      result,
	})
}

// Solve accepts a JSON or form body and answers with the SolveResult
func (h *SolveHandler) Solve(w http.ResponseWriter, r *http.Request) {
	var body SolveRequestBody

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			h.logger.Error("Failed to decode request", "error", err)
			handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			h.logger.Error("Failed to parse form", "error", err)
			handlers.ResponseError(w, "Invalid request", http.StatusBadRequest)
			return
		}
		body = formBody(r)
	}

	result := h.solveService.Solve(r.Context(), h.newRequest(r, body))
	handlers.ResponseWithJson(w, http.StatusOK, result)
}

func (h *SolveHandler) Quota(w http.ResponseWriter, r *http.Request) {
	usage, err := h.solveService.Quota(r.Context())
	if err != nil {
		h.logger.Error("Failed to read quota usage", "error", err)
		handlers.ResponseError(w, "Quota store unavailable", http.StatusServiceUnavailable)
		return
	}
	handlers.ResponseWithJson(w, http.StatusOK, usage)
}

func (h *SolveHandler) newRequest(r *http.Request, body SolveRequestBody) *domain.SolveRequest {
	req := domain.NewSolveRequest(body.Description, body.Language, body.TestInput)
	if id, ok := handlers.RequestIDFromContext(r.Context()); ok {
		req.RequestID = id
	}
	return req
}

func (h *SolveHandler) render(w http.ResponseWriter, view pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, view); err != nil {
		h.logger.Error("Failed to render page", "error", err)
	}
}

func formBody(r *http.Request) SolveRequestBody {
	return SolveRequestBody{
		Description: r.PostFormValue("description"),
		Language:    r.PostFormValue("language"),
		TestInput:   r.PostFormValue("test_input"),
	}
}
