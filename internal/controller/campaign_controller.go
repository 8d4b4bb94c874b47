// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/quartzline/b2bmailer-backend/internal/errors"
	"github.com/quartzline/b2bmailer-backend/internal/queue"
	"github.com/quartzline/b2bmailer-backend/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
	DispatchService *service.DispatchService
	TemplateService *service.TemplateService
	Queue           queue.Queue
	Log             *slog.Logger
}

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name        string  `json:"name"`
		Subject     string  `json:"subject"`
		TemplateID  int     `json:"template_id"`
		ScheduledAt *string `json:"scheduled_at,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if body.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.CreateCampaign(body.Name, body.Subject, body.TemplateID, body.ScheduledAt)
	if err != nil {
		status := http.StatusInternalServerError
		if appErrors.IsNotFound(err) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	status := r.URL.Query().Get("status")

	campaigns, pagination, err := c.CampaignService.ListCampaigns(page, pageSize, status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data":       campaigns,
		"pagination": pagination,
	})
}

func (c *CampaignController) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.GetCampaign(id)
	if err != nil {
		status := http.StatusInternalServerError
		if appErrors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(campaign)
}

// DispatchCampaign runs the send workflow. With ?async=1 and a configured
// broker the job is enqueued for cmd/worker instead; the response then only
// acknowledges the hand-off.
func (c *CampaignController) DispatchCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if r.URL.Query().Get("async") == "1" && c.Queue != nil {
		if err := c.Queue.Publish(queue.TopicCampaignDispatch, id); err != nil {
			c.Log.Error("failed to enqueue dispatch, falling back to sync", "campaign_id", id, "err", err)
		} else {
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]interface{}{"queued": true, "campaign_id": id})
			return
		}
	}

	result := c.DispatchService.Dispatch(r.Context(), id)
	if !result.Success {
		// The result body is the contract either way; the status code just
		// mirrors it for plain HTTP clients.
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	json.NewEncoder(w).Encode(result)
}

// TestSendCampaign emails the campaign to one address for proofing. It never
// changes campaign status and does not touch the subscriber list.
func (c *CampaignController) TestSendCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := c.DispatchService.TestSend(r.Context(), id, body.Email); err != nil {
		status := http.StatusBadRequest
		if appErrors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"sent": true, "email": body.Email})
}

// PreviewCampaign renders the campaign's template with sample recipient
// values for the admin preview frame.
func (c *CampaignController) PreviewCampaign(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.GetCampaign(id)
	if err != nil {
		status := http.StatusInternalServerError
		if appErrors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	if campaign.TemplateID == nil {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}

	template, err := c.TemplateService.Get(*campaign.TemplateID)
	if err != nil {
		http.Error(w, "template not found", http.StatusNotFound)
		return
	}

	html, err := c.TemplateService.Preview(template.Content, template.Name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}
