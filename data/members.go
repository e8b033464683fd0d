package data

import (
	"regexp"
	"time"

	"github.com/ndukwe/athenaeum/internal/validator"
)

// Membership statuses. Suspended members keep their history but
// cannot borrow books.
const (
	MemberStatusActive    = "ACTIVE"
	MemberStatusSuspended = "SUSPENDED"
)

// PhoneRX is a loose sanity check for phone numbers. It accepts an
// optional leading + followed by digits, spaces, parentheses and dashes.
var PhoneRX = regexp.MustCompile(`^[+]?[0-9\s()-]{7,20}$`)

// Member defines a library member model.
type Member struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	MembershipID     string    `json:"membershipId"`
	RegistrationDate time.Time `json:"registrationDate"`
	Status           string    `json:"status"`
	Version          int32     `json:"-"`
}

func ValidateEmail(v *validator.Validator, email string) {
	v.Check(email != "", "email", "must be provided")
	v.Check(validator.Matches(email, validator.EmailRX), "email", "must be a valid email address")
}

func ValidatePhone(v *validator.Validator, phone string) {
	v.Check(phone != "", "phone", "must be provided")
	v.Check(validator.Matches(phone, PhoneRX), "phone", "must be a valid phone number")
}

func ValidateMember(v *validator.Validator, member *Member) {
	v.Check(member.Name != "", "name", "must be provided")
	v.Check(len(member.Name) <= 500, "name", "must not be more than 500 bytes long")
	ValidateEmail(v, member.Email)
	ValidatePhone(v, member.Phone)
	v.Check(validator.PermittedValue(member.Status, MemberStatusActive, MemberStatusSuspended), "status", "must be either ACTIVE or SUSPENDED")
}
