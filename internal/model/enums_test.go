package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayTablesCoverEveryValue(t *testing.T) {
	for _, r := range AllRoles() {
		assert.Contains(t, roleDisplay, r)
	}
	for _, s := range AllComplaintStatuses() {
		assert.Contains(t, statusDisplay, s)
	}
	for _, p := range AllPriorities() {
		assert.Contains(t, priorityDisplay, p)
	}
	for _, st := range AllServiceTypes() {
		assert.Contains(t, serviceTypeDisplay, st)
	}
	for _, s := range AllPaymentStatuses() {
		assert.Contains(t, paymentStatusDisplay, s)
	}
	for _, m := range AllPaymentMethods() {
		assert.Contains(t, paymentMethodDisplay, m)
	}

	// and the tables hold nothing beyond the declared values
	assert.Len(t, roleDisplay, len(AllRoles()))
	assert.Len(t, statusDisplay, len(AllComplaintStatuses()))
	assert.Len(t, priorityDisplay, len(AllPriorities()))
	assert.Len(t, serviceTypeDisplay, len(AllServiceTypes()))
	assert.Len(t, paymentStatusDisplay, len(AllPaymentStatuses()))
	assert.Len(t, paymentMethodDisplay, len(AllPaymentMethods()))
}

func TestUnknownValueDisplay(t *testing.T) {
	assert.Equal(t, unknownDisplay, ComplaintStatus("archived").Display())
	assert.Equal(t, "High", PriorityHigh.Display().Label)
}

func TestRoleFlow(t *testing.T) {
	assert.Equal(t, FlowAdmin, RoleAdmin.Flow())
	assert.Equal(t, FlowUser, RoleUser.Flow())
	assert.Equal(t, FlowUser, RoleClient.Flow())

	assert.False(t, RoleAdmin.Assignable())
	assert.True(t, RoleUser.Assignable())
	assert.True(t, RoleClient.Assignable())
}

func TestLegacyValues(t *testing.T) {
	s, err := ParseComplaintStatus("pending")
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, s)

	s, err = ParseComplaintStatus("in progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, s)

	p, err := ParsePaymentStatus("unpaid")
	require.NoError(t, err)
	assert.Equal(t, PaymentPending, p)
}

func TestParseRejectsUnknown(t *testing.T) {
	_, err := ParseRole("root")
	assert.Error(t, err)
	_, err = ParsePriority("urgent")
	assert.Error(t, err)
	_, err = ParsePaymentMethod("cheque")
	assert.Error(t, err)
	_, err = ParseServiceType("cleaning")
	assert.Error(t, err)
}

func TestEnumJSON(t *testing.T) {
	var c struct {
		Status   ComplaintStatus `json:"status"`
		Priority Priority        `json:"priority"`
		Method   PaymentMethod   `json:"method"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"pending","priority":"HIGH","method":""}`), &c))
	assert.Equal(t, StatusOpen, c.Status)
	assert.Equal(t, PriorityHigh, c.Priority)
	assert.Equal(t, PaymentMethod(""), c.Method)

	err := json.Unmarshal([]byte(`{"status":"reopened"}`), &c)
	assert.Error(t, err)

	out, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{RoleClient})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"client"}`, string(out))
}
