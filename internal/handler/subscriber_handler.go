// internal/handler/subscriber_handler.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/quartzline/b2bmailer-backend/internal/model"
	"github.com/quartzline/b2bmailer-backend/internal/repository"
)

type SubscriberHandler struct {
	Repo repository.SubscriberRepositoryInterface
}

func (h *SubscriberHandler) ListSubscribers(w http.ResponseWriter, r *http.Request) {
	var (
		subscribers []model.Subscriber
		err         error
	)
	if r.URL.Query().Get("status") == model.SubscriberStatusActive {
		subscribers, err = h.Repo.ListActive()
	} else {
		subscribers, err = h.Repo.ListAll()
	}
	if err != nil {
		http.Error(w, "failed to fetch subscribers: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": subscribers})
}

func (h *SubscriberHandler) CreateSubscriber(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	sub := &model.Subscriber{Email: body.Email, Name: body.Name}
	if err := h.Repo.Create(sub); err != nil {
		http.Error(w, "failed to create subscriber: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sub)
}

// Unsubscribe serves the link embedded in every footer:
// GET /unsubscribe?email=<url-encoded-email>. It is idempotent; an unknown
// email still gets the confirmation page rather than an error.
func (h *SubscriberHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	if err := h.Repo.UpdateStatusByEmail(email, model.SubscriberStatusUnsubscribed); err != nil {
		http.Error(w, "failed to unsubscribe", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte("<html><body><p>You have been unsubscribed.</p></body></html>"))
}
