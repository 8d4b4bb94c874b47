// internal/handler/inquiry_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/quartzline/b2bmailer-backend/internal/errors"
	"github.com/quartzline/b2bmailer-backend/internal/model"
	"github.com/quartzline/b2bmailer-backend/internal/repository"
	"github.com/quartzline/b2bmailer-backend/internal/service"
)

type InquiryHandler struct {
	Repo    repository.InquiryRepositoryInterface
	Service *service.InquiryService
}

// CreateInquiry is the public quote-request intake endpoint.
func (h *InquiryHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Company     string `json:"company"`
		ProductName string `json:"product_name"`
		Quantity    int    `json:"quantity"`
		Message     string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.Email == "" || body.ProductName == "" {
		http.Error(w, "email and product_name are required", http.StatusBadRequest)
		return
	}
	if body.Quantity < 1 {
		body.Quantity = 1
	}

	inquiry := &model.Inquiry{
		Name:        body.Name,
		Email:       body.Email,
		Company:     body.Company,
		ProductName: body.ProductName,
		Quantity:    body.Quantity,
		Message:     body.Message,
	}
	if body.Message != "" {
		// The intake message opens the conversation log.
		inquiry.MessageThreads = []model.MessageThread{
			{Sender: "customer", Message: body.Message, Timestamp: time.Now()},
		}
	}
	if err := h.Repo.Create(inquiry); err != nil {
		http.Error(w, "failed to create inquiry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(inquiry)
}

func (h *InquiryHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.Repo.ListAll()
	if err != nil {
		http.Error(w, "failed to fetch inquiries: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"data": inquiries})
}

func (h *InquiryHandler) GetInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid inquiry id", http.StatusBadRequest)
		return
	}

	inquiry, err := h.Repo.GetByID(id)
	if err != nil {
		status := http.StatusInternalServerError
		if appErrors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(inquiry)
}

func (h *InquiryHandler) ReplyToInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid inquiry id", http.StatusBadRequest)
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	inquiry, err := h.Service.Reply(r.Context(), id, body.Message)
	if err != nil {
		status := http.StatusBadRequest
		if appErrors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		if inquiry != nil {
			// Thread was saved; only delivery failed.
			status = http.StatusBadGateway
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(inquiry)
}

func (h *InquiryHandler) SendQuote(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid inquiry id", http.StatusBadRequest)
		return
	}

	var body service.Quote
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	inquiry, err := h.Service.SendQuote(r.Context(), id, body)
	if err != nil {
		status := http.StatusBadRequest
		if appErrors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		if inquiry != nil {
			status = http.StatusBadGateway
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(inquiry)
}
