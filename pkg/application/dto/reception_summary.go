package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/paddy/pkg/domain/entities"
)

// ParameterLine is the read-only view of one quality parameter
type ParameterLine struct {
	Parameter entities.ParameterName `json:"parameter"`
	Percent   decimal.Decimal        `json:"percent"`
	Tolerance decimal.Decimal        `json:"tolerance"`
	PenaltyKg decimal.Decimal        `json:"penalty_kg"`
}

// ReceptionSummary is a snapshot of a reception at the time it was taken
type ReceptionSummary struct {
	ReceptionID uuid.UUID `json:"reception_id"`
	Reference   string    `json:"reference,omitempty"`
	Template    string    `json:"template,omitempty"`

	GrossWeight decimal.Decimal `json:"gross_weight"`
	Tare        decimal.Decimal `json:"tare"`
	NetWeight   decimal.Decimal `json:"net_weight"`
	Price       decimal.Decimal `json:"price"`

	Parameters []ParameterLine `json:"parameters"`

	ToleranceGroupEnabled bool            `json:"tolerance_group_enabled"`
	GroupPercentTotal     decimal.Decimal `json:"group_percent_total"`
	GroupToleranceTotal   decimal.Decimal `json:"group_tolerance_total"`
	GroupPenaltyKg        decimal.Decimal `json:"group_penalty_kg"`
	IndependentDiscountKg decimal.Decimal `json:"independent_discount_kg"`

	BonusTolerance decimal.Decimal `json:"bonus_tolerance"`
	BonusKg        decimal.Decimal `json:"bonus_kg"`
	DryPercent     decimal.Decimal `json:"dry_percent"`

	TotalDiscountKg decimal.Decimal `json:"total_discount_kg"`
	TotalPaddyNetKg decimal.Decimal `json:"total_paddy_net_kg"`
	TotalToPay      decimal.Decimal `json:"total_to_pay"`

	// RejectedInputs counts raw entries that were refused while building the reception
	RejectedInputs int `json:"rejected_inputs,omitempty"`
}
