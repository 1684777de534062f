package services

import (
	"fmt"

	"github.com/vsinha/paddy/pkg/domain/entities"
)

// TemplateValidator checks discount templates for configuration mistakes
type TemplateValidator struct{}

// NewTemplateValidator creates a new template validator
func NewTemplateValidator() *TemplateValidator {
	return &TemplateValidator{}
}

// BandOverlap describes two bands of the same table that share readings.
// Lookups resolve the overlap in favour of the earlier band.
type BandOverlap struct {
	Template  string
	Parameter entities.ParameterName
	First     entities.DiscountBand
	Second    entities.DiscountBand
}

// ValidationResult contains the results of template validation
type ValidationResult struct {
	Overlaps       []BandOverlap
	DuplicateNames []string
	Defaults       []string
	Errors         []string
	Warnings       []string
}

// ValidateTemplates performs validation on a set of templates
func (v *TemplateValidator) ValidateTemplates(templates []*entities.DiscountTemplate) *ValidationResult {
	result := &ValidationResult{
		Overlaps:       make([]BandOverlap, 0),
		DuplicateNames: make([]string, 0),
		Defaults:       make([]string, 0),
		Errors:         make([]string, 0),
		Warnings:       make([]string, 0),
	}

	seen := make(map[string]bool)
	for _, tmpl := range templates {
		if seen[tmpl.Name] {
			result.DuplicateNames = append(result.DuplicateNames, tmpl.Name)
		}
		seen[tmpl.Name] = true

		if tmpl.Default {
			result.Defaults = append(result.Defaults, tmpl.Name)
		}

		result.Errors = append(result.Errors, v.detectInvertedBands(tmpl)...)
		result.Overlaps = append(result.Overlaps, v.detectOverlaps(tmpl)...)
	}

	if len(result.DuplicateNames) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Duplicate template names found: %v", result.DuplicateNames))
	}

	if len(result.Defaults) > 1 {
		result.Errors = append(result.Errors, fmt.Sprintf("More than one default template: %v", result.Defaults))
	}

	for _, overlap := range result.Overlaps {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"template %s: %s bands [%s, %s] and [%s, %s] overlap, the first one wins",
			overlap.Template, overlap.Parameter,
			overlap.First.Start, overlap.First.End,
			overlap.Second.Start, overlap.Second.End))
	}

	return result
}

// detectInvertedBands reports bands whose end lies before their start
func (v *TemplateValidator) detectInvertedBands(tmpl *entities.DiscountTemplate) []string {
	errs := make([]string, 0)
	for _, param := range entities.AllParameters() {
		for _, band := range tmpl.BandsFor(param) {
			if band.End.LessThan(band.Start) {
				errs = append(errs, fmt.Sprintf("template %s: %s band end (%s) is less than start (%s)",
					tmpl.Name, param, band.End, band.Start))
			}
		}
	}
	return errs
}

// detectOverlaps compares every pair of bands in each parameter table
func (v *TemplateValidator) detectOverlaps(tmpl *entities.DiscountTemplate) []BandOverlap {
	overlaps := make([]BandOverlap, 0)
	for _, param := range entities.AllParameters() {
		bands := tmpl.BandsFor(param)
		for i := 0; i < len(bands); i++ {
			for j := i + 1; j < len(bands); j++ {
				if bands[i].Overlaps(bands[j]) {
					overlaps = append(overlaps, BandOverlap{
						Template:  tmpl.Name,
						Parameter: param,
						First:     bands[i],
						Second:    bands[j],
					})
				}
			}
		}
	}
	return overlaps
}
