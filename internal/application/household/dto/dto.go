package dto

import (
	"time"

	"github.com/reliefops/cva/internal/domain/household"
)

type MemberRequest struct {
	FirstName   string     `json:"first_name" validate:"required,max=100"`
	LastName    string     `json:"last_name" validate:"required,max=100"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      string     `json:"gender" validate:"omitempty,oneof=male female other"`
	NationalID  string     `json:"national_id" validate:"max=50"`
	Phone       string     `json:"phone" validate:"max=30"`
	Email       string     `json:"email" validate:"omitempty,email"`
	IsHead      bool       `json:"is_head"`
	IsProxy     bool       `json:"is_proxy"`
}

type RegisterHouseholdRequest struct {
	ProjectID          uint            `json:"project_id" validate:"required"`
	RegistrationNumber string          `json:"registration_number" validate:"required,max=50"`
	LocationID         *uint           `json:"location_id,omitempty"`
	Address            string          `json:"address" validate:"max=500"`
	Members            []MemberRequest `json:"members" validate:"dive"`
}

type MemberResponse struct {
	ID          uint       `json:"id"`
	FullName    string     `json:"full_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      string     `json:"gender,omitempty"`
	NationalID  string     `json:"national_id,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Email       string     `json:"email,omitempty"`
	IsHead      bool       `json:"is_head"`
	IsProxy     bool       `json:"is_proxy"`
}

type HouseholdResponse struct {
	ID                 uint             `json:"id"`
	ProjectID          uint             `json:"project_id"`
	RegistrationNumber string           `json:"registration_number"`
	LocationID         *uint            `json:"location_id,omitempty"`
	Address            string           `json:"address,omitempty"`
	Status             string           `json:"status"`
	ConsentGiven       bool             `json:"consent_given"`
	ConsentDate        *time.Time       `json:"consent_date,omitempty"`
	Members            []MemberResponse `json:"members"`
	Version            int              `json:"version"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (r MemberRequest) ToBeneficiary() *household.Beneficiary {
	return &household.Beneficiary{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth,
		Gender:      household.Gender(r.Gender),
		NationalID:  r.NationalID,
		Phone:       r.Phone,
		Email:       r.Email,
		IsHead:      r.IsHead,
		IsProxy:     r.IsProxy,
	}
}

func ToHouseholdResponse(h *household.Household) *HouseholdResponse {
	members := make([]MemberResponse, 0, len(h.Members()))
	for _, m := range h.Members() {
		members = append(members, MemberResponse{
			ID:          m.ID,
			FullName:    m.FullName(),
			DateOfBirth: m.DateOfBirth,
			Gender:      string(m.Gender),
			NationalID:  m.NationalID,
			Phone:       m.Phone,
			Email:       m.Email,
			IsHead:      m.IsHead,
			IsProxy:     m.IsProxy,
		})
	}
	return &HouseholdResponse{
		ID:                 h.ID(),
		ProjectID:          h.ProjectID(),
		RegistrationNumber: h.RegistrationNumber(),
		LocationID:         h.LocationID(),
		Address:            h.Address(),
		Status:             h.Status().String(),
		ConsentGiven:       h.ConsentGiven(),
		ConsentDate:        h.ConsentDate(),
		Members:            members,
		Version:            h.Version(),
		CreatedAt:          h.CreatedAt(),
		UpdatedAt:          h.UpdatedAt(),
	}
}

func ToHouseholdResponses(list []*household.Household) []*HouseholdResponse {
	out := make([]*HouseholdResponse, 0, len(list))
	for _, h := range list {
		out = append(out, ToHouseholdResponse(h))
	}
	return out
}
