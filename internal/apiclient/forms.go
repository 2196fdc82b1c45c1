package apiclient

import (
	"errors"
	"fmt"
	"strings"

	"acservice/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	msgFillAllFields      = "Please fill in all fields"
	msgFillRequired       = "Please fill in all required fields"
	msgInvalidPhone       = "Please enter a valid phone number"
	msgPasswordRequired   = "Password is required"
	msgPasswordsDontMatch = "Passwords do not match"
	msgNegativeAmount     = "Amounts cannot be negative"
	msgAdvanceTooLarge    = "Advance amount cannot be greater than total amount"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// enum accepts any closed model type
	_ = v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		e, ok := fl.Field().Interface().(interface{ Valid() bool })
		return ok && e.Valid()
	})
	return v
}

type fieldErrors []validator.FieldError

func (fe fieldErrors) first(tag string) validator.FieldError {
	for _, e := range fe {
		if e.Tag() == tag {
			return e
		}
	}
	return nil
}

func (fe fieldErrors) has(tag string) bool { return fe.first(tag) != nil }

func failures(form any) fieldErrors {
	err := validate.Struct(form)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return fieldErrors(verrs)
	}
	return nil
}

func invalid(msg string) error { return &ValidationError{Message: msg} }

func invalidValue(fe validator.FieldError) error {
	return invalid("Invalid " + strings.ToLower(fe.Field()) + ": " + fmt.Sprint(fe.Value()))
}

// LoginForm is checked before any network call
type LoginForm struct {
	Phone    string `json:"phone" validate:"required,min=10"`
	Password string `json:"password" validate:"required"`
}

func (f LoginForm) Validate() error {
	fe := failures(f)
	switch {
	case fe.has("required"):
		return invalid(msgFillAllFields)
	case fe.has("min"):
		return invalid(msgInvalidPhone)
	}
	return nil
}

// UserForm creates or edits an account. Password may stay empty on edit.
type UserForm struct {
	Name            string     `validate:"required"`
	Phone           string     `validate:"required,min=10"`
	Password        string     `validate:"omitempty,min=6"`
	ConfirmPassword string     `validate:"eqfield=Password"`
	Role            model.Role `validate:"omitempty,enum"`
}

func (f UserForm) Validate(creating bool) error {
	fe := failures(f)
	switch {
	case fe.has("required"):
		return invalid(msgFillRequired)
	case fe.first("min") != nil && fe.first("min").Field() == "Phone":
		return invalid(msgInvalidPhone)
	case creating && (f.Password == "" || f.ConfirmPassword == ""):
		return invalid(msgPasswordRequired)
	case fe.has("eqfield"):
		return invalid(msgPasswordsDontMatch)
	case fe.has("min"):
		return invalid("Password must be at least 6 characters")
	case fe.has("enum"):
		return invalidValue(fe.first("enum"))
	}
	return nil
}

func (f UserForm) body() map[string]any {
	role := f.Role
	if role == "" {
		role = model.RoleUser
	}
	b := map[string]any{"name": f.Name, "phone": f.Phone, "role": role}
	if f.Password != "" {
		b["password"] = f.Password
	}
	return b
}

// ComplaintForm is the full complaint editor. On update every field is sent,
// so repeating the same form leaves the same stored state.
type ComplaintForm struct {
	Title           string                `json:"title" validate:"required"`
	Description     string                `json:"description" validate:"required"`
	Status          model.ComplaintStatus `json:"status,omitempty" validate:"omitempty,enum"`
	Priority        model.Priority        `json:"priority,omitempty" validate:"omitempty,enum"`
	ServiceType     model.ServiceType     `json:"serviceType,omitempty" validate:"omitempty,enum"`
	CustomerName    string                `json:"customerName" validate:"required"`
	CustomerPhone   string                `json:"customerPhone" validate:"required"`
	CustomerAddress string                `json:"customerAddress"`
	ACType          string                `json:"acType"`
	ACBrand         string                `json:"acBrand"`
	ACModel         string                `json:"acModel"`
	ACSerialNumber  string                `json:"acSerialNumber"`
	Amount          *decimal.Decimal      `json:"amount,omitempty"`
	TechnicianNotes string                `json:"technicianNotes"`
	PartsReplaced   []string              `json:"partsReplaced,omitempty"`
	WarrantyInfo    *model.WarrantyInfo   `json:"warrantyInfo,omitempty"`
}

func (f ComplaintForm) Validate() error {
	fe := failures(f)
	switch {
	case fe.has("required"):
		return invalid(msgFillRequired)
	case fe.has("enum"):
		return invalidValue(fe.first("enum"))
	}
	if f.Amount != nil && f.Amount.IsNegative() {
		return invalid(msgNegativeAmount)
	}
	return nil
}

// PaymentForm is the payment editor; balance and status are derived
type PaymentForm struct {
	Amount        *decimal.Decimal    `json:"amount" validate:"required"`
	AdvanceAmount *decimal.Decimal    `json:"advanceAmount" validate:"required"`
	Method        model.PaymentMethod `json:"method,omitempty" validate:"omitempty,enum"`
	Notes         string              `json:"notes"`
}

// ParsePaymentForm builds a form from text inputs; blank inputs stay unset
func ParsePaymentForm(amount, advance string, method model.PaymentMethod, notes string) (PaymentForm, error) {
	f := PaymentForm{Method: method, Notes: notes}
	for _, in := range []struct {
		text string
		dst  **decimal.Decimal
	}{{amount, &f.Amount}, {advance, &f.AdvanceAmount}} {
		text := strings.TrimSpace(in.text)
		if text == "" {
			continue
		}
		d, err := decimal.NewFromString(text)
		if err != nil {
			return PaymentForm{}, invalid("Invalid amount: " + text)
		}
		*in.dst = &d
	}
	return f, nil
}

func (f PaymentForm) Validate() error {
	_, err := f.Payment()
	return err
}

// Payment applies the billing rule to the form's amounts
func (f PaymentForm) Payment() (model.Payment, error) {
	fe := failures(f)
	switch {
	case fe.has("required"):
		return model.Payment{}, invalid(msgFillRequired)
	case fe.has("enum"):
		return model.Payment{}, invalidValue(fe.first("enum"))
	}

	balance, status, err := model.DerivePayment(*f.Amount, *f.AdvanceAmount)
	switch {
	case errors.Is(err, model.ErrNegativeAmount):
		return model.Payment{}, invalid(msgNegativeAmount)
	case errors.Is(err, model.ErrAdvanceExceedsAmount):
		return model.Payment{}, invalid(msgAdvanceTooLarge)
	case err != nil:
		return model.Payment{}, invalid(err.Error())
	}
	return model.Payment{
		Amount:        *f.Amount,
		AdvanceAmount: *f.AdvanceAmount,
		BalanceAmount: balance,
		Status:        status,
		Method:        f.Method,
		Notes:         f.Notes,
	}, nil
}
