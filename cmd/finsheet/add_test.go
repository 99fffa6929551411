package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/finsheet/finsheet/internal/model"
)

func TestNormalizePartial(t *testing.T) {
	partial := model.Record{
		"details":     "Hosting",
		"monthlyCost": "85.50",
		"section":     "Cloud",
	}

	normalizePartial(model.KindBudget, partial)

	assert.Equal(t, 85.5, partial["monthlyCost"], "numeric strings become numbers")
	assert.Equal(t, "Hosting", partial["details"], "text fields stay strings")
	assert.Equal(t, "Cloud", partial["section"])
}

func TestNormalizePartialUnknownFieldUntouched(t *testing.T) {
	partial := model.Record{"mystery": "42"}
	normalizePartial(model.KindBudget, partial)
	assert.Equal(t, "42", partial["mystery"])
}
