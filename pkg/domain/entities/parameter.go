package entities

import (
	"fmt"
	"strings"
)

// ParameterName identifies one of the fixed quality attributes measured on a paddy lot
type ParameterName int

const (
	Humedad ParameterName = iota
	GranosVerdes
	Impurezas
	Vano
	Hualcacho
	GranosManchados
	GranosPelados
	GranosYesosos
)

// ParameterCount is the number of quality parameters carried by every reception
const ParameterCount = int(GranosYesosos) + 1

// String method for ParameterName enum
func (p ParameterName) String() string {
	switch p {
	case Humedad:
		return "Humedad"
	case GranosVerdes:
		return "GranosVerdes"
	case Impurezas:
		return "Impurezas"
	case Vano:
		return "Vano"
	case Hualcacho:
		return "Hualcacho"
	case GranosManchados:
		return "GranosManchados"
	case GranosPelados:
		return "GranosPelados"
	case GranosYesosos:
		return "GranosYesosos"
	default:
		return "Unknown"
	}
}

// Valid reports whether p is one of the known quality parameters
func (p ParameterName) Valid() bool {
	return p >= Humedad && p <= GranosYesosos
}

// MarshalText renders the parameter by name so it reads naturally in JSON and CSV
func (p ParameterName) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid parameter: %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText parses a parameter name, case-insensitively
func (p *ParameterName) UnmarshalText(text []byte) error {
	parsed, err := ParseParameterName(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// AllParameters returns every quality parameter in display order
func AllParameters() []ParameterName {
	params := make([]ParameterName, ParameterCount)
	for i := range params {
		params[i] = ParameterName(i)
	}
	return params
}

// ParseParameterName resolves a parameter from its name. Underscores, spaces and
// case are ignored, so "granos_verdes" and "Granos Verdes" both match GranosVerdes.
func ParseParameterName(s string) (ParameterName, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "", " ", "", "-", "").Replace(key)
	for _, p := range AllParameters() {
		if strings.ToLower(p.String()) == key {
			return p, nil
		}
	}
	return Humedad, fmt.Errorf("invalid parameter: %s", s)
}
