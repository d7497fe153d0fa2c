// Resonance - Visitor Personalization and Content Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/resonance

// Package content describes recommendable entities and classifies them into
// a closed set of kinds.
package content

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/resonance/internal/geo"
)

// Kind discriminates the content variants.
type Kind string

const (
	KindUnknown       Kind = ""
	KindStore         Kind = "store"
	KindProduct       Kind = "product"
	KindTraining      Kind = "training"
	KindArticle       Kind = "article"
	KindContactAction Kind = "contact"
	KindAbout         Kind = "about"
	KindFranchise     Kind = "franchise"
)

// Kinds lists every known kind except KindUnknown.
var Kinds = []Kind{KindStore, KindProduct, KindTraining, KindArticle, KindContactAction, KindAbout, KindFranchise}

// ParseKind converts a string into a Kind. The empty string maps to KindUnknown.
func ParseKind(v string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(v)))
	if k == KindUnknown {
		return KindUnknown, nil
	}
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown content kind %q", v)
}

// Hours is a daily opening window in local hours, [Open, Close).
type Hours struct {
	Open  int `json:"open" koanf:"open" validate:"gte=0,lte=24"`
	Close int `json:"close" koanf:"close" validate:"gte=0,lte=24"`
}

// Contains reports whether hour falls inside the window.
// A window with Close <= Open wraps past midnight.
func (h Hours) Contains(hour int) bool {
	if h.Close > h.Open {
		return hour >= h.Open && hour < h.Close
	}
	return hour >= h.Open || hour < h.Close
}

func (h Hours) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", h.Open, h.Close)
}

// Item is any recommendable entity. Which fields are populated depends on Kind.
type Item struct {
	ID          string   `json:"id" validate:"required"`
	Kind        Kind     `json:"kind,omitempty"`
	Subtype     string   `json:"subtype,omitempty"`
	Name        string   `json:"name,omitempty"`
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	Coordinates   *geo.Coordinate `json:"coordinates,omitempty"`
	Address       string          `json:"address,omitempty"`
	District      string          `json:"district,omitempty"`
	City          string          `json:"city,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	BusinessHours *Hours          `json:"business_hours,omitempty"`

	Duration string      `json:"duration,omitempty"`
	Level    string      `json:"level,omitempty"`
	Sessions []time.Time `json:"sessions,omitempty"`

	Price float64 `json:"price,omitempty"`
}

// HasLocation reports whether the item carries any geographic data.
func (it Item) HasLocation() bool {
	return it.Coordinates != nil || it.District != "" || it.City != ""
}

// Text returns the lower-cased free text used for keyword matching.
func (it Item) Text() string {
	parts := make([]string, 0, 5+len(it.Tags))
	for _, s := range []string{it.Name, it.Title, it.Description, it.Category, it.Brand} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, it.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// DisplayName prefers Name and falls back to Title, then ID.
func (it Item) DisplayName() string {
	switch {
	case it.Name != "":
		return it.Name
	case it.Title != "":
		return it.Title
	default:
		return it.ID
	}
}

// Classify resolves the item's kind. An explicit Kind wins; otherwise the
// populated fields decide.
func Classify(it Item) Kind {
	if it.Kind != KindUnknown {
		return it.Kind
	}
	switch {
	case it.Coordinates != nil && it.Address != "":
		return KindStore
	case it.Duration != "" && it.Level != "":
		return KindTraining
	case it.Brand != "" || it.Price > 0:
		return KindProduct
	case it.Title != "" && it.Description != "":
		return KindArticle
	default:
		return KindUnknown
	}
}

// JourneyType maps a kind onto the content types used by the journey table.
func JourneyType(k Kind) (string, bool) {
	switch k {
	case KindAbout:
		return "about", true
	case KindStore:
		return "stores", true
	case KindProduct:
		return "products", true
	case KindFranchise:
		return "franchise", true
	case KindTraining:
		return "training", true
	case KindArticle, KindContactAction, KindUnknown:
		return "", false
	}
	return "", false
}
