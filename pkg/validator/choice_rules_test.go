package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/broadsidehq/lobby/pkg/validator"
)

func TestInList(t *testing.T) {
	t.Run("passes when value is in list", func(t *testing.T) {
		rule := validator.InList("count", 3, []int{1, 2, 3})
		assert.True(t, rule.Check())
		assert.Equal(t, "count", rule.Error.Field)
		assert.Equal(t, "one_of", rule.Error.Rule)
	})

	t.Run("fails when value is not in list", func(t *testing.T) {
		rule := validator.InList("count", 7, []int{1, 2, 3})
		assert.False(t, rule.Check())
	})

	t.Run("fails for empty list", func(t *testing.T) {
		rule := validator.InList("count", 1, []int{})
		assert.False(t, rule.Check())
	})
}

func TestNotInList(t *testing.T) {
	t.Run("passes when value is not in list", func(t *testing.T) {
		rule := validator.NotInList("count", 7, []int{1, 2, 3})
		assert.True(t, rule.Check())
		assert.Equal(t, "not_one_of", rule.Error.Rule)
	})

	t.Run("fails when value is in list", func(t *testing.T) {
		rule := validator.NotInList("count", 2, []int{1, 2, 3})
		assert.False(t, rule.Check())
	})
}

func TestInListString(t *testing.T) {
	allowed := []string{"1", "2", "3", "4", "5"}

	t.Run("passes for allowed value", func(t *testing.T) {
		rule := validator.InListString("num_ships", "3", allowed)
		assert.True(t, rule.Check())
		assert.Equal(t, "num_ships", rule.Error.Field)
		assert.Equal(t, "one_of", rule.Error.Rule)
		assert.Equal(t, "must be one of: 1, 2, 3, 4, 5", rule.Error.Message)
	})

	t.Run("fails for value outside the list", func(t *testing.T) {
		rule := validator.InListString("num_ships", "6", allowed)
		assert.False(t, rule.Check())
	})

	t.Run("fails for empty value", func(t *testing.T) {
		rule := validator.InListString("num_ships", "", allowed)
		assert.False(t, rule.Check())
	})

	t.Run("is case sensitive", func(t *testing.T) {
		rule := validator.InListString("mode", "Classic", []string{"classic"})
		assert.False(t, rule.Check())
	})
}

func TestNotInListString(t *testing.T) {
	t.Run("passes when value is absent", func(t *testing.T) {
		rule := validator.NotInListString("player_name", "drake", []string{"admin", "root"})
		assert.True(t, rule.Check())
	})

	t.Run("fails when value is present", func(t *testing.T) {
		rule := validator.NotInListString("player_name", "admin", []string{"admin", "root"})
		assert.False(t, rule.Check())
		assert.Equal(t, "must not be one of: admin, root", rule.Error.Message)
	})
}
