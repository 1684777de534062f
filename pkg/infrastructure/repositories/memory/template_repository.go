package memory

import (
	"fmt"

	"github.com/vsinha/paddy/pkg/domain/entities"
	"github.com/vsinha/paddy/pkg/domain/repositories"
)

// TemplateRepository provides in-memory discount template storage
type TemplateRepository struct {
	templates    []entities.DiscountTemplate
	templatesMap map[string]int
}

// NewTemplateRepository creates a new in-memory template repository
func NewTemplateRepository(expectedTemplates int) *TemplateRepository {
	return &TemplateRepository{
		templates:    make([]entities.DiscountTemplate, 0, expectedTemplates),
		templatesMap: make(map[string]int, expectedTemplates),
	}
}

// Verify interface compliance
var _ repositories.TemplateRepository = (*TemplateRepository)(nil)

// LoadTemplates loads templates into the repository
func (r *TemplateRepository) LoadTemplates(templates []*entities.DiscountTemplate) error {
	for _, tmpl := range templates {
		if tmpl == nil {
			return fmt.Errorf("cannot load nil template")
		}
		r.AddTemplate(*tmpl)
	}
	return nil
}

// AddTemplate adds a template, replacing any template with the same name
func (r *TemplateRepository) AddTemplate(tmpl entities.DiscountTemplate) {
	if index, exists := r.templatesMap[tmpl.Name]; exists {
		r.templates[index] = tmpl
		return
	}
	r.templatesMap[tmpl.Name] = len(r.templates)
	r.templates = append(r.templates, tmpl)
}

// GetTemplate returns the template with the given name
func (r *TemplateRepository) GetTemplate(name string) (*entities.DiscountTemplate, error) {
	index, exists := r.templatesMap[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", repositories.ErrTemplateNotFound, name)
	}
	return &r.templates[index], nil
}

// GetDefaultTemplate returns the first template flagged as default, falling
// back to the only loaded template
func (r *TemplateRepository) GetDefaultTemplate() (*entities.DiscountTemplate, error) {
	for i := range r.templates {
		if r.templates[i].Default {
			return &r.templates[i], nil
		}
	}
	if len(r.templates) == 1 {
		return &r.templates[0], nil
	}
	return nil, fmt.Errorf("%w: no default among %d templates", repositories.ErrTemplateNotFound, len(r.templates))
}

// GetAllTemplates returns all templates in load order
func (r *TemplateRepository) GetAllTemplates() ([]*entities.DiscountTemplate, error) {
	var templates []*entities.DiscountTemplate
	for i := range r.templates {
		templates = append(templates, &r.templates[i])
	}
	return templates, nil
}
