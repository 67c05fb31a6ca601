package auth

import (
	"encoding/json"
	"net/http"

	"github.com/abdullah-naeem-gh/Fashionblend/internal/errs"
	"github.com/abdullah-naeem-gh/Fashionblend/internal/models"
)

// Handlers exposes the session manager's operations over HTTP.
type Handlers struct {
	manager *Manager
}

func NewHandlers(manager *Manager) *Handlers {
	return &Handlers{manager: manager}
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.manager.Register(req.Email, req.Password)
	if err != nil {
		http.Error(w, errs.UserMessage(err), http.StatusUnprocessableEntity)
		return
	}

	writeAuthResponse(w, "Signup & signin successful", session)
}

func (h *Handlers) SignupBrand(w http.ResponseWriter, r *http.Request) {
	var req models.BrandSignupRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.BrandName == "" {
		http.Error(w, "Please enter your brand name", http.StatusBadRequest)
		return
	}

	session, err := h.manager.RegisterBrand(req)
	if err != nil {
		http.Error(w, errs.UserMessage(err), errs.CodeOf(err).HTTPStatus())
		return
	}

	writeAuthResponse(w, "Brand account created successfully", session)
}

func (h *Handlers) Signin(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.manager.Authenticate(req.Email, req.Password)
	if err != nil {
		http.Error(w, "Signin failed: "+errs.UserMessage(err), http.StatusUnauthorized)
		return
	}

	writeAuthResponse(w, "Signin successful", session)
}

func (h *Handlers) Signout(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.EndSession(); err != nil {
		http.Error(w, errs.UserMessage(err), http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.AuthResponse{Message: "Signed out"})
}

func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	session, err := h.manager.Refresh()
	if err != nil {
		http.Error(w, errs.UserMessage(err), http.StatusUnauthorized)
		return
	}

	writeAuthResponse(w, "Session refreshed", session)
}

// Session reports the current bootstrap state: session, role, brand
// info and whether role resolution is still in flight.
func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.manager.State())
}

func writeAuthResponse(w http.ResponseWriter, message string, session *models.Session) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.AuthResponse{
		Message: message,
		Session: session,
	})
}
