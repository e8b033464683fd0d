package data

import (
	"testing"

	"github.com/ndukwe/athenaeum/internal/validator"
	"github.com/stretchr/testify/assert"
)

func validMember() *Member {
	return &Member{
		Name:   "Ada Obi",
		Email:  "ada.obi@example.com",
		Phone:  "+234 801 234 5678",
		Status: MemberStatusActive,
	}
}

func TestValidateMember(t *testing.T) {
	t.Run("valid member passes", func(t *testing.T) {
		v := validator.New()
		ValidateMember(v, validMember())
		assert.True(t, v.Valid())
	})

	t.Run("missing name is rejected", func(t *testing.T) {
		v := validator.New()
		member := validMember()
		member.Name = ""
		ValidateMember(v, member)
		assert.Contains(t, v.Errors, "name")
	})

	t.Run("malformed email is rejected", func(t *testing.T) {
		v := validator.New()
		member := validMember()
		member.Email = "ada.obi"
		ValidateMember(v, member)
		assert.Contains(t, v.Errors, "email")
	})

	t.Run("missing phone is rejected", func(t *testing.T) {
		v := validator.New()
		member := validMember()
		member.Phone = ""
		ValidateMember(v, member)
		assert.Contains(t, v.Errors, "phone")
	})

	t.Run("phone with letters is rejected", func(t *testing.T) {
		v := validator.New()
		member := validMember()
		member.Phone = "CALL-ME-MAYBE"
		ValidateMember(v, member)
		assert.Contains(t, v.Errors, "phone")
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		v := validator.New()
		member := validMember()
		member.Status = "RETIRED"
		ValidateMember(v, member)
		assert.Contains(t, v.Errors, "status")
	})

	t.Run("suspended status is accepted", func(t *testing.T) {
		v := validator.New()
		member := validMember()
		member.Status = MemberStatusSuspended
		ValidateMember(v, member)
		assert.True(t, v.Valid())
	})
}
