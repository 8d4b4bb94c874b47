// internal/service/template_service.go
package service

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/quartzline/b2bmailer-backend/internal/block"
	"github.com/quartzline/b2bmailer-backend/internal/model"
	"github.com/quartzline/b2bmailer-backend/internal/render"
	"github.com/quartzline/b2bmailer-backend/internal/repository"
)

// TemplateService owns the template lifecycle. The block document is the
// source of truth; the html_content projection is recompiled on every
// content write and never updated on its own.
type TemplateService struct {
	TemplateRepo repository.TemplateRepositoryInterface
	CampaignRepo repository.CampaignRepositoryInterface
	Compiler     *render.Compiler
	Log          *slog.Logger
}

// Create compiles the document and stores both forms. The raw content bytes
// are persisted as received so unknown editor fields survive the round trip.
func (s *TemplateService) Create(name, subject string, content json.RawMessage) (*model.Template, error) {
	blocks, err := block.ParseDocument(content)
	if err != nil {
		return nil, err
	}
	if content == nil {
		content = json.RawMessage("[]")
	}
	t := &model.Template{
		Name:        name,
		Subject:     subject,
		Content:     content,
		HTMLContent: s.Compiler.Compile(blocks, name),
	}
	if err := s.TemplateRepo.Create(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update recompiles and persists content and projection together.
func (s *TemplateService) Update(id int, name, subject string, content json.RawMessage) (*model.Template, error) {
	blocks, err := block.ParseDocument(content)
	if err != nil {
		return nil, err
	}
	if content == nil {
		content = json.RawMessage("[]")
	}
	htmlContent := s.Compiler.Compile(blocks, name)
	if err := s.TemplateRepo.UpdateContent(id, name, subject, content, htmlContent); err != nil {
		return nil, err
	}
	return s.TemplateRepo.GetByID(id)
}

// Delete removes the template and clears the reference on any campaign
// pointing at it, so those campaigns fail fast on their next dispatch
// instead of dereferencing a dead id.
func (s *TemplateService) Delete(id int) error {
	if err := s.TemplateRepo.Delete(id); err != nil {
		return err
	}
	return s.CampaignRepo.UnlinkTemplate(id)
}

func (s *TemplateService) Get(id int) (*model.Template, error) {
	return s.TemplateRepo.GetByID(id)
}

func (s *TemplateService) List() ([]model.Template, error) {
	return s.TemplateRepo.ListAll()
}

// Preview compiles a document with sample recipient values for the editor's
// sandboxed frame. A compiler panic is recovered here and surfaced as a
// plain error so a broken preview never blocks saving the template.
func (s *TemplateService) Preview(content json.RawMessage, name string) (html string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.Log.Error("preview generation panicked", "template", name, "panic", r)
			html = ""
			err = fmt.Errorf("preview failed")
		}
	}()

	blocks, perr := block.ParseDocument(content)
	if perr != nil {
		return "", perr
	}
	return PersonalizeSample(s.Compiler.Compile(blocks, name)), nil
}
