package service_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzline/b2bmailer-backend/internal/logger"
	"github.com/quartzline/b2bmailer-backend/internal/model"
	"github.com/quartzline/b2bmailer-backend/internal/render"
	"github.com/quartzline/b2bmailer-backend/internal/service"
)

func newTemplateService(tr *mockTemplateRepo, cr *mockCampaignRepo) *service.TemplateService {
	return &service.TemplateService{
		TemplateRepo: tr,
		CampaignRepo: cr,
		Compiler:     &render.Compiler{Year: 2025},
		Log:          logger.Discard(),
	}
}

func TestTemplateCreateCompilesProjection(t *testing.T) {
	repo := newMockTemplateRepo()
	svc := newTemplateService(repo, newMockCampaignRepo())

	content := json.RawMessage(`[{"id":"b1","type":"heading","content":"Spring Launch","level":2}]`)
	created, err := svc.Create("Spring", "Spring is here", content)
	require.NoError(t, err)

	assert.Contains(t, created.HTMLContent, "Spring Launch")
	assert.Contains(t, created.HTMLContent, "<!DOCTYPE html>")
	// Raw document bytes stored as received.
	assert.JSONEq(t, string(content), string(created.Content))
}

func TestTemplateCreateRejectsMalformedDocument(t *testing.T) {
	svc := newTemplateService(newMockTemplateRepo(), newMockCampaignRepo())

	_, err := svc.Create("Broken", "x", json.RawMessage(`{"not":"an array"`))
	assert.Error(t, err)
}

func TestTemplateCreateNilContentBecomesEmptyDocument(t *testing.T) {
	svc := newTemplateService(newMockTemplateRepo(), newMockCampaignRepo())

	created, err := svc.Create("Empty", "x", nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(created.Content))
	assert.Contains(t, created.HTMLContent, "<!DOCTYPE html>")
}

func TestTemplateUpdateRecompilesProjection(t *testing.T) {
	repo := newMockTemplateRepo(&model.Template{
		ID:          1,
		Name:        "Old",
		Content:     json.RawMessage(`[{"id":"b1","type":"text","content":"old copy"}]`),
		HTMLContent: "stale projection",
	})
	svc := newTemplateService(repo, newMockCampaignRepo())

	updated, err := svc.Update(1, "New", "New subject", json.RawMessage(`[{"id":"b1","type":"text","content":"fresh copy"}]`))
	require.NoError(t, err)

	assert.Contains(t, updated.HTMLContent, "fresh copy")
	assert.NotContains(t, updated.HTMLContent, "old copy")
	require.Len(t, repo.updates, 1)
	assert.Contains(t, repo.updates[0], "fresh copy")
}

func TestTemplateUpdateNotFound(t *testing.T) {
	svc := newTemplateService(newMockTemplateRepo(), newMockCampaignRepo())

	_, err := svc.Update(404, "x", "x", json.RawMessage(`[]`))
	assert.Error(t, err)
}

func TestTemplateDeleteUnlinksCampaigns(t *testing.T) {
	tmpl := &model.Template{ID: 7, Name: "Doomed"}
	campaignRepo := newMockCampaignRepo(
		&model.Campaign{ID: 1, TemplateID: intPtr(7), Status: model.CampaignStatusDraft},
		&model.Campaign{ID: 2, TemplateID: intPtr(9), Status: model.CampaignStatusDraft},
	)
	svc := newTemplateService(newMockTemplateRepo(tmpl), campaignRepo)

	require.NoError(t, svc.Delete(7))

	c1, err := campaignRepo.GetByID(1)
	require.NoError(t, err)
	assert.Nil(t, c1.TemplateID)
	c2, err := campaignRepo.GetByID(2)
	require.NoError(t, err)
	require.NotNil(t, c2.TemplateID)
	assert.Equal(t, 9, *c2.TemplateID)
}

func TestTemplatePreviewUsesSampleValues(t *testing.T) {
	svc := newTemplateService(newMockTemplateRepo(), newMockCampaignRepo())

	html, err := svc.Preview(json.RawMessage(`[{"id":"b1","type":"text","content":"Hello {{name}}"}]`), "Preview")
	require.NoError(t, err)

	assert.Contains(t, html, "Jane Doe")
	assert.NotContains(t, html, "{{name}}")
	// Footer unsubscribe link resolves to a dead anchor in previews.
	assert.NotContains(t, html, "{{unsubscribe_url}}")
}

func TestTemplatePreviewMalformedDocument(t *testing.T) {
	svc := newTemplateService(newMockTemplateRepo(), newMockCampaignRepo())

	_, err := svc.Preview(json.RawMessage(`not json`), "Preview")
	assert.Error(t, err)
}
