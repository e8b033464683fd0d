package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	t.Run("new validator is valid", func(t *testing.T) {
		v := New()
		assert.True(t, v.Valid())
	})

	t.Run("failed check records an error", func(t *testing.T) {
		v := New()
		v.Check(false, "title", "must be provided")
		assert.False(t, v.Valid())
		assert.Equal(t, "must be provided", v.Errors["title"])
	})

	t.Run("first error for a key wins", func(t *testing.T) {
		v := New()
		v.AddError("email", "must be provided")
		v.AddError("email", "must be a valid email address")
		assert.Equal(t, "must be provided", v.Errors["email"])
	})

	t.Run("matches", func(t *testing.T) {
		assert.True(t, Matches("reader@example.com", EmailRX))
		assert.False(t, Matches("not-an-email", EmailRX))
	})

	t.Run("permitted value", func(t *testing.T) {
		assert.True(t, PermittedValue("ACTIVE", "ACTIVE", "SUSPENDED"))
		assert.False(t, PermittedValue("RETIRED", "ACTIVE", "SUSPENDED"))
	})

	t.Run("unique", func(t *testing.T) {
		assert.True(t, Unique([]string{"a", "b"}))
		assert.False(t, Unique([]string{"a", "a"}))
	})
}
