package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	appErrors "github.com/quartzline/b2bmailer-backend/internal/errors"
	"github.com/quartzline/b2bmailer-backend/internal/mailer"
	"github.com/quartzline/b2bmailer-backend/internal/model"
)

// Mock repositories: in-memory maps behind the repository interfaces, with
// switches to force failures.

type mockCampaignRepo struct {
	mu        sync.Mutex
	campaigns map[int]*model.Campaign

	failUpdateStatus bool
	failMarkSent     bool
	statusLog        []string
}

func newMockCampaignRepo(campaigns ...*model.Campaign) *mockCampaignRepo {
	m := &mockCampaignRepo{campaigns: map[int]*model.Campaign{}}
	for _, c := range campaigns {
		m.campaigns[c.ID] = c
	}
	return m
}

func (m *mockCampaignRepo) Create(c *model.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = len(m.campaigns) + 1
	m.campaigns[c.ID] = c
	return nil
}

func (m *mockCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	cp := *c
	return &cp, nil
}

func (m *mockCampaignRepo) ListCampaigns(offset, limit int, status string) ([]*model.Campaign, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*model.Campaign{}
	for _, c := range m.campaigns {
		if status == "" || c.Status == status {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (m *mockCampaignRepo) UpdateStatus(campaignID int, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdateStatus {
		return fmt.Errorf("forced status update failure")
	}
	c, ok := m.campaigns[campaignID]
	if !ok {
		return appErrors.NewCampaignNotFound(campaignID)
	}
	c.Status = status
	m.statusLog = append(m.statusLog, status)
	return nil
}

func (m *mockCampaignRepo) MarkSent(campaignID int, sentAt time.Time, sentCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failMarkSent {
		return fmt.Errorf("forced mark sent failure")
	}
	c, ok := m.campaigns[campaignID]
	if !ok {
		return appErrors.NewCampaignNotFound(campaignID)
	}
	c.Status = model.CampaignStatusSent
	c.SentAt = &sentAt
	c.SentCount = sentCount
	m.statusLog = append(m.statusLog, model.CampaignStatusSent)
	return nil
}

func (m *mockCampaignRepo) UnlinkTemplate(templateID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.campaigns {
		if c.TemplateID != nil && *c.TemplateID == templateID {
			c.TemplateID = nil
		}
	}
	return nil
}

func (m *mockCampaignRepo) status(id int) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.campaigns[id].Status
}

type mockTemplateRepo struct {
	mu        sync.Mutex
	templates map[int]*model.Template
	updates   []string // html_content values passed to UpdateContent
}

func newMockTemplateRepo(templates ...*model.Template) *mockTemplateRepo {
	m := &mockTemplateRepo{templates: map[int]*model.Template{}}
	for _, t := range templates {
		m.templates[t.ID] = t
	}
	return m
}

func (m *mockTemplateRepo) Create(t *model.Template) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = len(m.templates) + 1
	m.templates[t.ID] = t
	return nil
}

func (m *mockTemplateRepo) GetByID(id int) (*model.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, appErrors.NewTemplateNotFound(id)
	}
	cp := *t
	return &cp, nil
}

func (m *mockTemplateRepo) ListAll() ([]model.Template, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Template{}
	for _, t := range m.templates {
		out = append(out, *t)
	}
	return out, nil
}

func (m *mockTemplateRepo) UpdateContent(id int, name, subject string, content json.RawMessage, htmlContent string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return appErrors.NewTemplateNotFound(id)
	}
	t.Name = name
	t.Subject = subject
	t.Content = content
	t.HTMLContent = htmlContent
	m.updates = append(m.updates, htmlContent)
	return nil
}

func (m *mockTemplateRepo) Delete(id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[id]; !ok {
		return appErrors.NewTemplateNotFound(id)
	}
	delete(m.templates, id)
	return nil
}

type mockSubscriberRepo struct {
	subs    []model.Subscriber
	listErr error
}

func (m *mockSubscriberRepo) ListActive() ([]model.Subscriber, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	active := []model.Subscriber{}
	for _, s := range m.subs {
		if s.Status == model.SubscriberStatusActive {
			active = append(active, s)
		}
	}
	return active, nil
}

func (m *mockSubscriberRepo) ListAll() ([]model.Subscriber, error) { return m.subs, nil }

func (m *mockSubscriberRepo) Create(s *model.Subscriber) error {
	s.ID = len(m.subs) + 1
	m.subs = append(m.subs, *s)
	return nil
}

func (m *mockSubscriberRepo) GetByEmail(email string) (*model.Subscriber, error) {
	for i := range m.subs {
		if m.subs[i].Email == email {
			return &m.subs[i], nil
		}
	}
	return nil, nil
}

func (m *mockSubscriberRepo) UpdateStatusByEmail(email, status string) error {
	for i := range m.subs {
		if m.subs[i].Email == email {
			m.subs[i].Status = status
		}
	}
	return nil
}

type mockInquiryRepo struct {
	mu        sync.Mutex
	inquiries map[int]*model.Inquiry
}

func newMockInquiryRepo(inquiries ...*model.Inquiry) *mockInquiryRepo {
	m := &mockInquiryRepo{inquiries: map[int]*model.Inquiry{}}
	for _, i := range inquiries {
		m.inquiries[i.ID] = i
	}
	return m
}

func (m *mockInquiryRepo) Create(i *model.Inquiry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i.ID = len(m.inquiries) + 1
	m.inquiries[i.ID] = i
	return nil
}

func (m *mockInquiryRepo) GetByID(id int) (*model.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.inquiries[id]
	if !ok {
		return nil, appErrors.NewInquiryNotFound(id)
	}
	cp := *i
	cp.MessageThreads = append([]model.MessageThread(nil), i.MessageThreads...)
	return &cp, nil
}

func (m *mockInquiryRepo) ListAll() ([]model.Inquiry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []model.Inquiry{}
	for _, i := range m.inquiries {
		out = append(out, *i)
	}
	return out, nil
}

func (m *mockInquiryRepo) AppendThread(id int, threads []model.MessageThread, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.inquiries[id]
	if !ok {
		return appErrors.NewInquiryNotFound(id)
	}
	i.MessageThreads = threads
	i.Status = status
	return nil
}

// mockSender records sends and fails or panics per recipient on demand.
type mockSender struct {
	mu       sync.Mutex
	sent     []mailer.SendParams
	failFor  map[string]error
	panicFor map[string]bool
}

func newMockSender() *mockSender {
	return &mockSender{failFor: map[string]error{}, panicFor: map[string]bool{}}
}

func (m *mockSender) Send(_ context.Context, params mailer.SendParams) error {
	if m.panicFor[params.To] {
		panic("transport exploded")
	}
	if err, ok := m.failFor[params.To]; ok {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, params)
	return nil
}

func (m *mockSender) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *mockSender) sentHTMLFor(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.sent {
		if p.To == email {
			return p.HTML
		}
	}
	return ""
}
