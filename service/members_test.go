package service

import (
	"strings"
	"testing"

	"github.com/ndukwe/athenaeum/data"
	"github.com/ndukwe/athenaeum/data/dto"
	"github.com/ndukwe/athenaeum/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterMember(t *testing.T) {
	t.Run("new member gets a membership id and starts ACTIVE", func(t *testing.T) {
		var registered *data.Member
		repo := &stubRepo{
			registerMember: func(member *data.Member) error {
				member.ID = 1
				registered = member
				return nil
			},
		}
		s := newTestService(repo)
		member, err := s.RegisterMember("Ada Obi", "ada.obi@example.com", "+234 801 234 5678")
		require.NoError(t, err)
		assert.Equal(t, data.MemberStatusActive, member.Status)
		assert.True(t, strings.HasPrefix(member.MembershipID, "MEM-"))
		assert.Greater(t, len(member.MembershipID), len("MEM-"))
		require.NotNil(t, registered)
		assert.Equal(t, member, registered)
	})

	t.Run("membership ids differ between registrations", func(t *testing.T) {
		repo := &stubRepo{
			registerMember: func(member *data.Member) error { return nil },
		}
		s := newTestService(repo)
		first, err := s.RegisterMember("Ada Obi", "ada.obi@example.com", "+234 801 234 5678")
		require.NoError(t, err)
		second, err := s.RegisterMember("Chinedu Eze", "chinedu@example.com", "0802 345 6789")
		require.NoError(t, err)
		assert.NotEqual(t, first.MembershipID, second.MembershipID)
	})

	t.Run("duplicate email fails validation", func(t *testing.T) {
		repo := &stubRepo{
			registerMember: func(member *data.Member) error {
				return repository.ErrDuplicateRecord
			},
		}
		s := newTestService(repo)
		_, err := s.RegisterMember("Ada Obi", "ada.obi@example.com", "+234 801 234 5678")
		assert.ErrorIs(t, err, ErrFailedValidation)
		assert.Contains(t, err.Error(), "email")
	})

	t.Run("invalid phone never reaches the repository", func(t *testing.T) {
		s := newTestService(&stubRepo{})
		_, err := s.RegisterMember("Ada Obi", "ada.obi@example.com", "not a phone")
		assert.ErrorIs(t, err, ErrFailedValidation)
		assert.Contains(t, err.Error(), "phone")
	})
}

func TestUpdateMember(t *testing.T) {
	storedMember := func() *data.Member {
		return &data.Member{
			ID:           7,
			Name:         "Ada Obi",
			Email:        "ada.obi@example.com",
			Phone:        "+234 801 234 5678",
			MembershipID: "MEM-test",
			Status:       data.MemberStatusActive,
			Version:      1,
		}
	}

	t.Run("member can be suspended", func(t *testing.T) {
		repo := &stubRepo{
			getMember:    func(memberID int64) (*data.Member, error) { return storedMember(), nil },
			updateMember: func(member *data.Member) error { return nil },
		}
		s := newTestService(repo)
		status := data.MemberStatusSuspended
		member, err := s.UpdateMember(7, dto.UpdateMemberRequestBody{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, data.MemberStatusSuspended, member.Status)
		assert.Equal(t, "Ada Obi", member.Name)
	})

	t.Run("unknown status fails validation", func(t *testing.T) {
		repo := &stubRepo{
			getMember: func(memberID int64) (*data.Member, error) { return storedMember(), nil },
		}
		s := newTestService(repo)
		status := "RETIRED"
		_, err := s.UpdateMember(7, dto.UpdateMemberRequestBody{Status: &status})
		assert.ErrorIs(t, err, ErrFailedValidation)
		assert.Contains(t, err.Error(), "status")
	})
}

func TestDeleteMember(t *testing.T) {
	t.Run("member with books on loan cannot be deleted", func(t *testing.T) {
		repo := &stubRepo{
			countActiveBorrowsForMember: func(memberID int64) (int64, error) { return 1, nil },
		}
		s := newTestService(repo)
		err := s.DeleteMember(7)
		assert.ErrorIs(t, err, ErrOutstandingBorrows)
	})

	t.Run("member with no books on loan is deleted", func(t *testing.T) {
		deleted := false
		repo := &stubRepo{
			countActiveBorrowsForMember: func(memberID int64) (int64, error) { return 0, nil },
			deleteMember: func(memberID int64) error {
				deleted = true
				return nil
			},
		}
		s := newTestService(repo)
		err := s.DeleteMember(7)
		require.NoError(t, err)
		assert.True(t, deleted)
	})
}

func TestListMembers(t *testing.T) {
	t.Run("unknown status filter fails validation", func(t *testing.T) {
		s := newTestService(&stubRepo{})
		filters := data.Filters{Page: 1, PageSize: 20, Sort: "id", SortSafeList: []string{"id"}}
		_, _, err := s.ListMembers("", "RETIRED", filters)
		assert.ErrorIs(t, err, ErrFailedValidation)
		assert.Contains(t, err.Error(), "status")
	})
}
