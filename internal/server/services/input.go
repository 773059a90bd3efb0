package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func validationError(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// CreateUserInput carries the payload of a user registration. Empty strings
// after trimming count as absent.
type CreateUserInput struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Phone        string `json:"phone" validate:"required,len=10"`
	Password     string `json:"password" validate:"required"`
	TOSAgreement bool   `json:"tosAgreement" validate:"eq=true"`
}

func (in *CreateUserInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Password = strings.TrimSpace(in.Password)
}

// UpdateUserInput carries a partial user update. Phone identifies the user;
// at least one of the remaining fields must be set.
type UpdateUserInput struct {
	Phone     string `json:"phone" validate:"required,len=10"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

func (in *UpdateUserInput) normalize() {
	in.Phone = strings.TrimSpace(in.Phone)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Password = strings.TrimSpace(in.Password)
}

func (in *UpdateUserInput) hasUpdates() bool {
	return in.FirstName != "" || in.LastName != "" || in.Password != ""
}

// CreateCheckInput carries the payload of a check creation.
type CreateCheckInput struct {
	Protocol       string `json:"protocol" validate:"required,oneof=http https"`
	URL            string `json:"url" validate:"required"`
	Method         string `json:"method" validate:"required,oneof=get post put delete"`
	SuccessCodes   []int  `json:"successCodes" validate:"required,min=1"`
	TimeoutSeconds int    `json:"timeoutSeconds" validate:"required,min=1,max=5"`
}

func (in *CreateCheckInput) normalize() {
	in.Protocol = strings.TrimSpace(in.Protocol)
	in.URL = strings.TrimSpace(in.URL)
	in.Method = strings.TrimSpace(in.Method)
}

// UpdateCheckInput carries a partial check update. ID identifies the check;
// at least one of the remaining fields must be set. A zero TimeoutSeconds
// and an empty SuccessCodes slice count as absent.
type UpdateCheckInput struct {
	ID             string `json:"id" validate:"required,len=20"`
	Protocol       string `json:"protocol" validate:"omitempty,oneof=http https"`
	URL            string `json:"url"`
	Method         string `json:"method" validate:"omitempty,oneof=get post put delete"`
	SuccessCodes   []int  `json:"successCodes" validate:"omitempty,min=1"`
	TimeoutSeconds int    `json:"timeoutSeconds" validate:"omitempty,min=1,max=5"`
}

func (in *UpdateCheckInput) normalize() {
	in.ID = strings.TrimSpace(in.ID)
	in.Protocol = strings.TrimSpace(in.Protocol)
	in.URL = strings.TrimSpace(in.URL)
	in.Method = strings.TrimSpace(in.Method)
}

func (in *UpdateCheckInput) hasUpdates() bool {
	return in.Protocol != "" || in.URL != "" || in.Method != "" ||
		len(in.SuccessCodes) > 0 || in.TimeoutSeconds != 0
}
