package validator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/broadsidehq/lobby/pkg/validator"
)

func TestRequiredNum(t *testing.T) {
	t.Run("passes for non-zero value", func(t *testing.T) {
		rule := validator.RequiredNum("attempts", 5)
		assert.True(t, rule.Check())
		assert.Equal(t, "required", rule.Error.Rule)
	})

	t.Run("fails for zero value", func(t *testing.T) {
		rule := validator.RequiredNum("attempts", 0)
		assert.False(t, rule.Check())
	})

	t.Run("passes for negative value", func(t *testing.T) {
		rule := validator.RequiredNum("offset", -1)
		assert.True(t, rule.Check())
	})
}

func TestMinNum(t *testing.T) {
	t.Run("passes when value equals minimum", func(t *testing.T) {
		rule := validator.MinNum("attempts", 1, 1)
		assert.True(t, rule.Check())
		assert.Equal(t, "min=1", rule.Error.Rule)
		assert.Equal(t, "must be at least 1", rule.Error.Message)
	})

	t.Run("passes when value exceeds minimum", func(t *testing.T) {
		rule := validator.MinNum("attempts", 5, 1)
		assert.True(t, rule.Check())
	})

	t.Run("fails when value is below minimum", func(t *testing.T) {
		rule := validator.MinNum("attempts", 0, 1)
		assert.False(t, rule.Check())
	})

	t.Run("works with durations", func(t *testing.T) {
		rule := validator.MinNum("window", 10*time.Minute, time.Minute)
		assert.True(t, rule.Check())
	})
}

func TestMaxNum(t *testing.T) {
	t.Run("passes when value equals maximum", func(t *testing.T) {
		rule := validator.MaxNum("capacity", 10000, 10000)
		assert.True(t, rule.Check())
		assert.Equal(t, "max=10000", rule.Error.Rule)
	})

	t.Run("fails when value exceeds maximum", func(t *testing.T) {
		rule := validator.MaxNum("capacity", 10001, 10000)
		assert.False(t, rule.Check())
	})
}

func TestNumericAliases(t *testing.T) {
	assert.True(t, validator.Min("f", 2, 1).Check())
	assert.False(t, validator.Min("f", 0, 1).Check())
	assert.True(t, validator.Max("f", 1, 2).Check())
	assert.False(t, validator.Max("f", 3, 2).Check())
}
