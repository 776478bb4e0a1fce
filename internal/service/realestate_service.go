package service

import (
	"log"
	"sort"
	"strings"

	"github.com/rsundaram/Networth-Tracker-Backend/internal/config"
	"github.com/rsundaram/Networth-Tracker-Backend/internal/model"
)

// Real estate valuation modes. No external market feed is consulted; every
// adjustment is deterministic and driven by configured assumptions.
const (
	ModeFallbackOnly = "fallback_only"
	ModeInflationIsh = "inflation_ish"
	ModeCadTimesHpi  = "cad_times_hpi"
)

// RealEstateService computes quarterly property values from configuration.
type RealEstateService struct {
	properties  map[string]config.RealEstateConfig
	assumptions config.Assumptions
}

// NewRealEstateService creates a RealEstateService from tracker config.
func NewRealEstateService(properties map[string]config.RealEstateConfig, assumptions config.Assumptions) *RealEstateService {
	return &RealEstateService{
		properties:  properties,
		assumptions: assumptions,
	}
}

// ComputeValues returns the owned value of every configured property,
// sorted by key for stable report ordering.
func (s *RealEstateService) ComputeValues() []model.RealEstateValue {
	keys := make([]string, 0, len(s.properties))
	for key := range s.properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	values := make([]model.RealEstateValue, 0, len(keys))
	for _, key := range keys {
		cfg := s.properties[key]

		ownership := cfg.OwnershipPct
		if ownership == 0 {
			ownership = 1.0
		}

		adjusted := s.applyMode(cfg.Mode, cfg.FallbackValue)

		values = append(values, model.RealEstateValue{
			Key:           key,
			Label:         labelFor(key),
			Mode:          cfg.Mode,
			County:        cfg.County,
			OwnershipPct:  ownership,
			FallbackValue: cfg.FallbackValue,
			AdjustedValue: adjusted,
			OwnedValue:    adjusted * ownership,
		})
	}
	return values
}

// applyMode adjusts a base value by the configured quarterly drift for the
// property's valuation mode. Unknown modes leave the value untouched.
func (s *RealEstateService) applyMode(mode string, base float64) float64 {
	switch mode {
	case ModeFallbackOnly, "":
		return base
	case ModeInflationIsh:
		return base * (1.0 + s.assumptions.InflationQoQPct/100.0)
	case ModeCadTimesHpi:
		return base * (1.0 + s.assumptions.HpiQoQPct/100.0)
	default:
		log.Printf("unknown real estate mode %q, using fallback value", mode)
		return base
	}
}

// labelFor turns a snake_case property key into a display label.
func labelFor(key string) string {
	words := strings.Split(key, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
