package apiclient

import (
	"testing"

	"acservice/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageOf(err error) string {
	if err == nil {
		return ""
	}
	return UserMessage(err)
}

func TestLoginFormValidate(t *testing.T) {
	assert.Equal(t, "Please fill in all fields", messageOf(LoginForm{Phone: "1234567890"}.Validate()))
	assert.Equal(t, "Please fill in all fields", messageOf(LoginForm{Password: "x"}.Validate()))
	assert.Equal(t, "Please enter a valid phone number", messageOf(LoginForm{Phone: "123456789", Password: "x"}.Validate()))
	assert.NoError(t, LoginForm{Phone: "1234567890", Password: "x"}.Validate())
}

func TestUserFormValidate(t *testing.T) {
	tests := []struct {
		name     string
		form     UserForm
		creating bool
		want     string
	}{
		{"missing name", UserForm{Phone: "1234567890"}, true, "Please fill in all required fields"},
		{"short phone", UserForm{Name: "A", Phone: "123"}, true, "Please enter a valid phone number"},
		{"create without password", UserForm{Name: "A", Phone: "1234567890"}, true, "Password is required"},
		{"create mismatch", UserForm{Name: "A", Phone: "1234567890", Password: "secret1", ConfirmPassword: "secret2"}, true, "Passwords do not match"},
		{"edit mismatch", UserForm{Name: "A", Phone: "1234567890", ConfirmPassword: "secret2"}, false, "Passwords do not match"},
		{"edit keeps password", UserForm{Name: "A", Phone: "1234567890"}, false, ""},
		{"bad role", UserForm{Name: "A", Phone: "1234567890", Role: "root"}, false, "Invalid role: root"},
		{"valid create", UserForm{Name: "A", Phone: "1234567890", Password: "secret1", ConfirmPassword: "secret1", Role: model.RoleUser}, true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, messageOf(tt.form.Validate(tt.creating)))
		})
	}
}

func TestUserFormBodyDefaultsRole(t *testing.T) {
	b := UserForm{Name: "A", Phone: "1234567890"}.body()
	assert.Equal(t, model.RoleUser, b["role"])
	assert.NotContains(t, b, "password")
}

func TestComplaintFormValidate(t *testing.T) {
	f := ComplaintForm{Title: "No cooling", Description: "Warm air", CustomerName: "Ravi"}
	assert.Equal(t, "Please fill in all required fields", messageOf(f.Validate()))

	f.CustomerPhone = "9876543210"
	assert.NoError(t, f.Validate())

	f.Status = "pending"
	assert.Equal(t, "Invalid status: pending", messageOf(f.Validate()))
}

func TestPaymentFormDerivesBalance(t *testing.T) {
	form, err := ParsePaymentForm("1500", "500", model.MethodUPI, "advance in cash")
	require.NoError(t, err)

	p, err := form.Payment()
	require.NoError(t, err)
	assert.True(t, p.BalanceAmount.Equal(decimal.NewFromInt(1000)), p.BalanceAmount.String())
	assert.Equal(t, model.PaymentPartial, p.Status)
	assert.Equal(t, model.MethodUPI, p.Method)
}

func TestPaymentFormRejects(t *testing.T) {
	tests := []struct {
		name, amount, advance string
		want                  string
	}{
		{"advance over amount", "500", "1500", "Advance amount cannot be greater than total amount"},
		{"missing advance", "500", "", "Please fill in all required fields"},
		{"missing amount", "", "0", "Please fill in all required fields"},
		{"negative", "-5", "0", "Amounts cannot be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form, err := ParsePaymentForm(tt.amount, tt.advance, "", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, messageOf(form.Validate()))
		})
	}

	_, err := ParsePaymentForm("12abc", "0", "", "")
	assert.True(t, IsValidationError(err))
}

func TestPaymentFormPaidInFull(t *testing.T) {
	form, err := ParsePaymentForm("800", "800", model.MethodCash, "")
	require.NoError(t, err)
	p, err := form.Payment()
	require.NoError(t, err)
	assert.Equal(t, model.PaymentPaid, p.Status)
	assert.True(t, p.BalanceAmount.IsZero())
}
