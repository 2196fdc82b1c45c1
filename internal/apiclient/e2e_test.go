package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"acservice/internal/apiclient"
	"acservice/internal/model"
	"acservice/internal/repository/memory"
	"acservice/internal/server"
	"acservice/internal/service"
	"acservice/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminPhone = "9000000001"
	adminPass  = "admin123"
)

func startServer(t *testing.T) (string, *websocket.Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	hub := websocket.NewHub()
	go hub.Run(ctx)

	store := memory.NewStore()
	router, svc := server.New(server.Repositories{
		Users:      store.Users(),
		Complaints: store.Complaints(),
		Audit:      store.Audit(),
		Statistics: store.Statistics(),
		Tx:         store.TxManager(),
	}, server.Options{
		Tokens: service.NewTokenIssuer([]byte("e2e-secret"), time.Hour),
		Hub:    hub,
	})
	_, err := svc.Users.EnsureAdmin(ctx, "Admin", adminPhone, adminPass)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv.URL, hub
}

func loggedIn(t *testing.T, baseURL, phone, password string) *apiclient.Client {
	t.Helper()
	c := apiclient.New(baseURL, apiclient.WithSessionStore(apiclient.NewMemoryStore()))
	_, err := c.Login(context.Background(), apiclient.LoginForm{Phone: phone, Password: password})
	require.NoError(t, err)
	return c
}

func TestEndToEndServiceDesk(t *testing.T) {
	baseURL, _ := startServer(t)
	ctx := context.Background()

	anon := apiclient.New(baseURL)
	_, err := anon.ListUsers(ctx)
	assert.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))

	_, err = anon.Login(ctx, apiclient.LoginForm{Phone: adminPhone, Password: "wrong-pass"})
	assert.Equal(t, "Invalid phone or password", apiclient.UserMessage(err))

	store := apiclient.NewMemoryStore()
	admin := apiclient.New(baseURL, apiclient.WithSessionStore(store))
	res, err := admin.Login(ctx, apiclient.LoginForm{Phone: adminPhone, Password: adminPass})
	require.NoError(t, err)
	assert.Equal(t, model.FlowAdmin, res.Flow)
	session, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.False(t, session.ExpiresAt.IsZero(), "expiry read from the JWT")

	tech, err := admin.CreateUser(ctx, apiclient.UserForm{
		Name: "Ravi", Phone: "9000000002", Password: "secret1", ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, tech.Role)

	_, err = admin.CreateUser(ctx, apiclient.UserForm{
		Name: "Dup", Phone: "9000000002", Password: "secret1", ConfirmPassword: "secret1",
	})
	assert.Equal(t, http.StatusConflict, apiclient.StatusCode(err))
	assert.Equal(t, "Phone number already registered", apiclient.UserMessage(err))

	users, err := admin.ListUsers(ctx)
	require.NoError(t, err)
	picker := apiclient.AssignableUsers(users)
	require.Len(t, picker, 1)
	assert.Equal(t, tech.ID, picker[0].ID)

	form := apiclient.ComplaintForm{
		Title: "AC not cooling", Description: "Blows warm air",
		CustomerName: "Meera", CustomerPhone: "9811111111", ACBrand: "Voltas",
	}
	created, err := admin.CreateComplaint(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOpen, created.Status)
	assert.Equal(t, "Admin", created.CreatedBy.Name)

	assigned, err := admin.AssignComplaint(ctx, created.ID, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi", assigned.AssigneeName())

	_, err = admin.AssignComplaint(ctx, created.ID, res.User.ID)
	assert.Equal(t, http.StatusConflict, apiclient.StatusCode(err), "admins cannot be assigned")

	techClient := loggedIn(t, baseURL, "9000000002", "secret1")
	mine, err := techClient.MyComplaints(ctx)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, created.ID, mine[0].ID)

	_, err = techClient.Dashboard(ctx)
	assert.Equal(t, http.StatusForbidden, apiclient.StatusCode(err))

	payment, err := apiclient.ParsePaymentForm("1500", "500", model.MethodCash, "")
	require.NoError(t, err)
	paid, err := techClient.UpdatePayment(ctx, created.ID, payment)
	require.NoError(t, err)
	assert.True(t, paid.Payment.BalanceAmount.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, model.PaymentPartial, paid.Payment.Status)

	stats, err := admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalUsers)
	assert.EqualValues(t, 1, stats.OpenComplaints)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(500)))
	assert.True(t, stats.PendingPayments.Equal(decimal.NewFromInt(1000)))

	filtered, err := admin.ListComplaints(ctx, apiclient.ComplaintQuery{Status: model.StatusDone})
	require.NoError(t, err)
	assert.Empty(t, filtered)

	logs, err := admin.AuditLogs(ctx, created.ID, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, logs.Total)
	assert.Equal(t, model.ActionUpdatePayment, logs.Logs[0].Action)

	require.NoError(t, admin.DeleteUser(ctx, tech.ID))
	orphan, err := admin.GetComplaint(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, orphan.AssignedTo, "deleting the assignee nulls the reference")

	require.NoError(t, admin.Logout(ctx))
	_, err = admin.ListUsers(ctx)
	assert.Equal(t, http.StatusUnauthorized, apiclient.StatusCode(err))
}

func TestEndToEndIdempotentUpdate(t *testing.T) {
	baseURL, _ := startServer(t)
	ctx := context.Background()
	admin := loggedIn(t, baseURL, adminPhone, adminPass)

	created, err := admin.CreateComplaint(ctx, apiclient.ComplaintForm{
		Title: "Gas refill", Description: "Low pressure", CustomerName: "Meera", CustomerPhone: "9811111111",
	})
	require.NoError(t, err)

	edit := apiclient.ComplaintForm{
		Title: "Gas refill", Description: "Low pressure, refilled R32",
		Status: model.StatusInProgress, Priority: model.PriorityHigh, ServiceType: model.ServiceMaintenance,
		CustomerName: "Meera", CustomerPhone: "9811111111",
		TechnicianNotes: "Checked for leaks", PartsReplaced: []string{"valve core"},
	}
	first, err := admin.UpdateComplaint(ctx, created.ID, edit)
	require.NoError(t, err)
	second, err := admin.UpdateComplaint(ctx, created.ID, edit)
	require.NoError(t, err)

	normalize := func(c *apiclient.Complaint) apiclient.Complaint {
		cp := *c
		cp.UpdatedAt = time.Time{}
		return cp
	}
	assert.Equal(t, normalize(first), normalize(second))
	assert.Equal(t, model.StatusInProgress, second.Status)
	assert.Equal(t, []string{"valve core"}, second.PartsReplaced)
}

func TestEndToEndWatch(t *testing.T) {
	baseURL, hub := startServer(t)
	admin := loggedIn(t, baseURL, adminPhone, adminPass)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	events := make(chan apiclient.Event, 4)
	done := make(chan error, 1)
	go func() {
		done <- admin.Watch(ctx, func(e apiclient.Event) { events <- e })
	}()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	_, err := admin.CreateComplaint(context.Background(), apiclient.ComplaintForm{
		Title: "Installation", Description: "New split unit", CustomerName: "Meera", CustomerPhone: "9811111111",
	})
	require.NoError(t, err)

	select {
	case e := <-events:
		assert.Equal(t, model.EventComplaintCreated, e.Type)
		require.NotNil(t, e.Complaint)
		assert.True(t, strings.HasPrefix(e.Complaint.Title, "Installation"))
	case <-ctx.Done():
		t.Fatal("no event received")
	}

	cancel()
	assert.NoError(t, <-done)
}
