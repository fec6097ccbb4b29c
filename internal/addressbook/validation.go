package addressbook

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	msgRequired    = "This field may not be blank."
	msgMaxLength   = "Ensure this field has no more than %s characters."
	msgEmail       = "Enter a valid email address."
	msgPhoneNumber = "Enter a valid phone number."
	msgUUID        = "Must be a valid UUID."
	msgInvalid     = "Invalid value."

	msgNonEmptyTogether = "At least one of the fields %s mustn't be empty."

	// MsgGroupsNotOwned rejects contact group references of a contact.
	MsgGroupsNotOwned = "Provided contact group UUID(s) do not exist for your user."
	// MsgContactsNotOwned rejects contact references of a contact group.
	MsgContactsNotOwned = "Provided contact UUID(s) do not exist for your user."
)

var validate = newValidator() //nolint:gochecknoglobals

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their json name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// ContactInput is the writable part of a contact.
type ContactInput struct {
	FirstName     string   `form:"first_name"     json:"first_name"     validate:"max=63"`
	LastName      string   `form:"last_name"      json:"last_name"      validate:"max=63"`
	Email         string   `form:"email"          json:"email"          validate:"omitempty,max=255,email"`
	PhoneNumber   string   `form:"phone_number"   json:"phone_number"   validate:"omitempty,max=15,e164"`
	ContactGroups []string `form:"contact_groups" json:"contact_groups"`
}

func (in *ContactInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
}

// validate checks the fields of in and parses the group references.
func (in *ContactInput) validate() ([]uuid.UUID, error) {
	in.normalize()

	verr := validateStruct(in)

	if in.FirstName == "" && in.LastName == "" {
		verr.Add(NonFieldErrors, fmt.Sprintf(msgNonEmptyTogether, "first_name, last_name"))
	}

	if in.Email == "" && in.PhoneNumber == "" {
		verr.Add(NonFieldErrors, fmt.Sprintf(msgNonEmptyTogether, "email, phone_number"))
	}

	refs := parseUUIDs(verr, "contact_groups", in.ContactGroups)

	return refs, verr.OrNil()
}

// ContactGroupInput is the writable part of a contact group.
type ContactGroupInput struct {
	Name     string   `form:"name"     json:"name"     validate:"required,max=255"`
	Contacts []string `form:"contacts" json:"contacts"`
}

// validate checks the fields of in and parses the contact references.
func (in *ContactGroupInput) validate() ([]uuid.UUID, error) {
	in.Name = strings.TrimSpace(in.Name)

	verr := validateStruct(in)
	refs := parseUUIDs(verr, "contacts", in.Contacts)

	return refs, verr.OrNil()
}

// MembershipInput is the body of an add to group request.
type MembershipInput struct {
	UUID string `form:"uuid" json:"uuid" validate:"required"`
}

// validate checks in and returns the referenced contact.
func (in *MembershipInput) validate() (uuid.UUID, error) {
	in.UUID = strings.TrimSpace(in.UUID)

	verr := validateStruct(in)
	if !verr.Empty() {
		return uuid.Nil, verr
	}

	id, err := uuid.Parse(in.UUID)
	if err != nil {
		verr.Add("uuid", msgUUID)

		return uuid.Nil, verr
	}

	return id, nil
}

func validateStruct(s any) *ValidationError {
	verr := NewValidationError()

	err := validate.Struct(s)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add(NonFieldErrors, err.Error())

		return verr
	}

	for _, fe := range fieldErrs {
		verr.Add(fe.Field(), message(fe))
	}

	return verr
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "max":
		return fmt.Sprintf(msgMaxLength, fe.Param())
	case "email":
		return msgEmail
	case "e164":
		return msgPhoneNumber
	default:
		return msgInvalid
	}
}

func parseUUIDs(verr *ValidationError, field string, raw []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(raw))

	for _, s := range raw {
		id, err := uuid.Parse(strings.TrimSpace(s))
		if err != nil {
			verr.Add(field, msgUUID)

			return nil
		}

		out = append(out, id)
	}

	return out
}
