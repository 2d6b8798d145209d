package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/priyakashinagar/ReelPostCity--sub001/internal/access"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/ads"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/auth"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/logger"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/posts"
	"github.com/priyakashinagar/ReelPostCity--sub001/internal/subscription"
)

// maxBodyBytes ограничивает размер тела запроса.
const maxBodyBytes = 1 << 20

var log = logger.StdLogger().With("handlers")

// Handler держит сервисы, которые обслуживают HTTP-запросы.
type Handler struct {
	Auth          *auth.Service
	Posts         *posts.Service
	Subscriptions *subscription.Service
	Ads           *ads.Provider
	Resolver      *access.Resolver
}

// renderJSON пишет v как JSON с кодом code.
func renderJSON(w http.ResponseWriter, r *http.Request, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf(r.Context(), "Error encoding response: %v", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// HTTP Error Handlers
func Render400(w http.ResponseWriter, r *http.Request, message string) {
	renderJSON(w, r, http.StatusBadRequest, errorBody{Error: "Bad Request: " + message})
}

func Render401(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
}

func Render403(w http.ResponseWriter, r *http.Request, message string) {
	renderJSON(w, r, http.StatusForbidden, errorBody{Error: "Forbidden: " + message})
}

func Render404(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusNotFound, errorBody{Error: "Not Found"})
}

func Render409(w http.ResponseWriter, r *http.Request, message string) {
	renderJSON(w, r, http.StatusConflict, errorBody{Error: message})
}

// Render500 логирует причину, клиенту уходит общее сообщение.
func Render500(w http.ResponseWriter, r *http.Request, err error) {
	log.Errorf(r.Context(), "Internal Server Error: %v", err)
	renderJSON(w, r, http.StatusInternalServerError, errorBody{Error: "Internal Server Error"})
}

// decode читает тело запроса в dst: JSON, если так указан Content-Type, иначе поля формы
// через fromForm.
func decode(w http.ResponseWriter, r *http.Request, dst any, fromForm func(get func(string) string)) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil {
			return errors.New("malformed JSON body")
		}
		return nil
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return errors.New("malformed form body")
	}
	fromForm(r.PostForm.Get)
	return nil
}

// Healthz отвечает, что процесс жив.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
