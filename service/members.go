package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/ndukwe/athenaeum/data"
	"github.com/ndukwe/athenaeum/data/dto"
	"github.com/ndukwe/athenaeum/internal/mailer"
	"github.com/ndukwe/athenaeum/internal/validator"
	"github.com/ndukwe/athenaeum/repository"
)

type members interface {
	RegisterMember(name string, email string, phone string) (*data.Member, error)
	GetMember(memberID int64) (*data.Member, error)
	ListMembers(search string, status string, filters data.Filters) ([]*data.Member, data.Metadata, error)
	UpdateMember(memberID int64, requestBody dto.UpdateMemberRequestBody) (*data.Member, error)
	DeleteMember(memberID int64) error
}

// RegisterMember service registers a new library member. The membership ID
// and registration date are assigned by the server and new members always
// start out ACTIVE.
func (s *service) RegisterMember(name string, email string, phone string) (*data.Member, error) {
	member := &data.Member{
		Name:         name,
		Email:        email,
		Phone:        phone,
		MembershipID: "MEM-" + uuid.NewString(),
		Status:       data.MemberStatusActive,
	}
	v := validator.New()
	if data.ValidateMember(v, member); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err := s.repo.RegisterMember(member)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("email", "a member with this email address already exists")
			return nil, s.failedValidation(v.Errors)
		default:
			return nil, err
		}
	}
	// Send welcome email in a background goroutine to speed up response time
	s.background(func() {
		data := map[string]string{
			"memberName":   strings.Split(member.Name, " ")[0],
			"membershipId": member.MembershipID,
		}
		mailer := mailer.New(s.config.Smtp.Host, s.config.Smtp.Port, s.config.Smtp.Username, s.config.Smtp.Password, s.config.Smtp.Sender)
		err := mailer.Send(member.Email, "member_welcome.tmpl", data)
		if err != nil {
			s.logger.PrintError(err, nil)
		}
	})
	return member, nil
}

// GetMember service retrieves the details of a member.
func (s *service) GetMember(memberID int64) (*data.Member, error) {
	member, err := s.repo.GetMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return member, nil
}

// ListMembers service retrieves a paginated list of members. The list can be
// searched, filtered by status and sorted.
func (s *service) ListMembers(search string, status string, filters data.Filters) ([]*data.Member, data.Metadata, error) {
	v := validator.New()
	if status != "" {
		v.Check(validator.PermittedValue(status, data.MemberStatusActive, data.MemberStatusSuspended), "status", "must be either ACTIVE or SUSPENDED")
	}
	if data.ValidateFilters(v, filters); !v.Valid() {
		return nil, data.Metadata{}, s.failedValidation(v.Errors)
	}
	members, metadata, err := s.repo.GetAllMembers(search, status, filters)
	if err != nil {
		return nil, data.Metadata{}, err
	}
	return members, metadata, nil
}

// UpdateMember service updates the details of a specific member.
func (s *service) UpdateMember(memberID int64, requestBody dto.UpdateMemberRequestBody) (*data.Member, error) {
	member, err := s.repo.GetMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	if requestBody.Name != nil {
		member.Name = *requestBody.Name
	}
	if requestBody.Email != nil {
		member.Email = *requestBody.Email
	}
	if requestBody.Phone != nil {
		member.Phone = *requestBody.Phone
	}
	if requestBody.Status != nil {
		member.Status = *requestBody.Status
	}
	v := validator.New()
	if data.ValidateMember(v, member); !v.Valid() {
		return nil, s.failedValidation(v.Errors)
	}
	err = s.repo.UpdateMember(member)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateRecord):
			v.AddError("email", "a member with this email address already exists")
			return nil, s.failedValidation(v.Errors)
		case errors.Is(err, repository.ErrEditConflict):
			return nil, ErrEditConflict
		default:
			return nil, err
		}
	}
	return member, nil
}

// DeleteMember service deletes a member. A member with books still out on
// loan cannot be deleted.
func (s *service) DeleteMember(memberID int64) error {
	active, err := s.repo.CountActiveBorrowsForMember(memberID)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrOutstandingBorrows
	}
	err = s.repo.DeleteMember(memberID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrRecordNotFound):
			return ErrRecordNotFound
		default:
			return err
		}
	}
	return nil
}
