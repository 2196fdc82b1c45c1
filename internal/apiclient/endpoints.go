package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"acservice/internal/model"
)

// Login validates the form, authenticates and saves the session.
// The returned flow is chosen from the user's role.
func (c *Client) Login(ctx context.Context, form LoginForm) (*LoginResult, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	var res struct {
		Token     string    `json:"token"`
		ExpiresAt time.Time `json:"expiresAt"`
		User      *User     `json:"user"`
	}
	if _, err := c.Post(ctx, "/auth/login", form, &res); err != nil {
		return nil, err
	}
	if res.Token == "" || res.User == nil {
		return nil, ErrUnexpectedResponse
	}

	session := Session{Token: res.Token, UserID: res.User.ID, Role: res.User.Role}
	if exp, ok := tokenExpiry(res.Token); ok {
		session.ExpiresAt = exp
	} else {
		session.ExpiresAt = res.ExpiresAt
	}
	if err := c.sessions.Save(ctx, session); err != nil {
		return nil, &SessionError{Op: "save", Err: err}
	}

	return &LoginResult{Token: res.Token, User: *res.User, Flow: FlowForRole(res.User.Role)}, nil
}

// Logout tells the server when a session exists, then always clears it locally.
// Server and network failures during logout are ignored.
func (c *Client) Logout(ctx context.Context) error {
	if s, err := c.Session(ctx); err == nil && s != nil {
		if _, err := c.Post(ctx, "/auth/logout", nil, nil); err != nil {
			c.logger.DebugContext(ctx, "logout request failed", "error", err)
		}
	}
	if err := c.sessions.Clear(ctx); err != nil {
		return &SessionError{Op: "clear", Err: err}
	}
	return nil
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if _, err := c.call(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// --- users ---

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	if _, err := c.call(ctx, http.MethodGet, "/user", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(ctx context.Context, form UserForm) (*User, error) {
	if err := form.Validate(true); err != nil {
		return nil, err
	}
	var u User
	if _, err := c.call(ctx, http.MethodPost, "/user", form.body(), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, form UserForm) (*User, error) {
	if err := form.Validate(false); err != nil {
		return nil, err
	}
	var u User
	if _, err := c.call(ctx, http.MethodPut, "/user/"+url.PathEscape(id), form.body(), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, "/user/"+url.PathEscape(id), nil, nil)
	return err
}

// --- complaints ---

// ComplaintQuery asks the server to filter the admin listing
type ComplaintQuery struct {
	Status   model.ComplaintStatus
	Priority model.Priority
}

func (q ComplaintQuery) encode() string {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.Priority != "" {
		v.Set("priority", string(q.Priority))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *Client) ListComplaints(ctx context.Context, q ComplaintQuery) ([]Complaint, error) {
	return c.complaints(ctx, "/complaint"+q.encode())
}

// MyComplaints lists complaints assigned to or created by the session user
func (c *Client) MyComplaints(ctx context.Context) ([]Complaint, error) {
	return c.complaints(ctx, "/complaint/my")
}

func (c *Client) complaints(ctx context.Context, path string) ([]Complaint, error) {
	list := []Complaint{}
	if _, err := c.call(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *Client) GetComplaint(ctx context.Context, id string) (*Complaint, error) {
	return c.complaint(ctx, http.MethodGet, "/complaint/"+url.PathEscape(id), nil)
}

func (c *Client) CreateComplaint(ctx context.Context, form ComplaintForm) (*Complaint, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return c.complaint(ctx, http.MethodPost, "/complaint", form)
}

func (c *Client) UpdateComplaint(ctx context.Context, id string, form ComplaintForm) (*Complaint, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return c.complaint(ctx, http.MethodPut, "/complaint/"+url.PathEscape(id), form)
}

func (c *Client) AssignComplaint(ctx context.Context, id, userID string) (*Complaint, error) {
	if userID == "" {
		return nil, invalid("Please select a technician")
	}
	body := map[string]string{"userId": userID}
	return c.complaint(ctx, http.MethodPut, "/complaint/"+url.PathEscape(id)+"/assign", body)
}

// UpdatePayment rejects inconsistent amounts locally before sending
func (c *Client) UpdatePayment(ctx context.Context, id string, form PaymentForm) (*Complaint, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return c.complaint(ctx, http.MethodPut, "/complaint/"+url.PathEscape(id)+"/payment", form)
}

func (c *Client) complaint(ctx context.Context, method, path string, body any) (*Complaint, error) {
	var cmp Complaint
	if _, err := c.call(ctx, method, path, body, &cmp); err != nil {
		return nil, err
	}
	return &cmp, nil
}

// --- admin ---

func (c *Client) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	var stats model.DashboardStats
	if _, err := c.call(ctx, http.MethodGet, "/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) AuditLogs(ctx context.Context, entityID string, page, limit int) (*AuditPage, error) {
	v := url.Values{}
	if entityID != "" {
		v.Set("entity_id", entityID)
	}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	path := "/audit-logs"
	if len(v) > 0 {
		path += "?" + v.Encode()
	}
	var p AuditPage
	if _, err := c.call(ctx, http.MethodGet, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
