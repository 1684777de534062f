package repositories

import (
	"errors"

	"github.com/vsinha/paddy/pkg/domain/entities"
)

// ErrTemplateNotFound is returned when no discount template matches a lookup
var ErrTemplateNotFound = errors.New("discount template not found")

// TemplateRepository provides access to discount templates
type TemplateRepository interface {
	GetTemplate(name string) (*entities.DiscountTemplate, error)
	// GetDefaultTemplate returns the template flagged as default, or the only
	// template when exactly one is loaded.
	GetDefaultTemplate() (*entities.DiscountTemplate, error)
	GetAllTemplates() ([]*entities.DiscountTemplate, error)
	LoadTemplates(templates []*entities.DiscountTemplate) error
}
