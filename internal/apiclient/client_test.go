package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"acservice/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a test server remembering the last Authorization header
type recorder struct {
	*httptest.Server
	hits int32
	auth atomic.Value
}

func newRecorder(t *testing.T, h http.HandlerFunc) *recorder {
	t.Helper()
	r := &recorder{}
	r.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		atomic.AddInt32(&r.hits, 1)
		r.auth.Store(req.Header.Get("Authorization"))
		h(w, req)
	}))
	t.Cleanup(r.Close)
	return r
}

func (r *recorder) lastAuth() string {
	v, _ := r.auth.Load().(string)
	return v
}

func (r *recorder) count() int { return int(atomic.LoadInt32(&r.hits)) }

func okJSON(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

type brokenStore struct{ MemoryStore }

func (*brokenStore) Load(context.Context) (*Session, error) {
	return nil, errors.New("keychain locked")
}

func TestBearerHeaderFollowsStore(t *testing.T) {
	srv := newRecorder(t, okJSON(`{"data":[]}`))
	store := NewMemoryStore()
	c := New(srv.URL, WithSessionStore(store))
	ctx := context.Background()

	_, err := c.Get(ctx, "/user", nil)
	require.NoError(t, err)
	assert.Empty(t, srv.lastAuth(), "no session, no header")

	require.NoError(t, store.Save(ctx, Session{Token: "abc"}))
	_, err = c.Get(ctx, "/user", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", srv.lastAuth())

	// re-read on every request, never cached
	require.NoError(t, store.Save(ctx, Session{Token: "def"}))
	_, err = c.Get(ctx, "/user", nil)
	require.NoError(t, err)
	assert.Equal(t, "Bearer def", srv.lastAuth())

	require.NoError(t, store.Clear(ctx))
	_, err = c.Get(ctx, "/user", nil)
	require.NoError(t, err)
	assert.Empty(t, srv.lastAuth())
}

func TestRequestHeadersAndBody(t *testing.T) {
	var got struct {
		contentType string
		body        map[string]any
		method      string
		path        string
	}
	srv := newRecorder(t, func(w http.ResponseWriter, r *http.Request) {
		got.contentType = r.Header.Get("Content-Type")
		got.method = r.Method
		got.path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got.body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"_id":"u9"}}`))
	})

	c := New(srv.URL + "/api/")
	var out struct {
		Data User `json:"data"`
	}
	res, err := c.Post(context.Background(), "user", map[string]string{"name": "Asha"}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, res.Status)
	assert.JSONEq(t, `{"data":{"_id":"u9"}}`, string(res.Data))
	assert.Equal(t, "u9", out.Data.ID)
	assert.Equal(t, "application/json", got.contentType)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/user", got.path)
	assert.Equal(t, "Asha", got.body["name"])
}

func TestStoreReadFailureFailsClosed(t *testing.T) {
	srv := newRecorder(t, okJSON(`{}`))
	c := New(srv.URL, WithSessionStore(&brokenStore{}))

	_, err := c.Get(context.Background(), "/complaint/my", nil)

	var sessErr *SessionError
	require.ErrorAs(t, err, &sessErr)
	assert.Equal(t, "load", sessErr.Op)
	assert.Zero(t, srv.count(), "request must not be sent")
}

func TestExpiredSessionIsClearedAndOmitted(t *testing.T) {
	srv := newRecorder(t, okJSON(`{}`))
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, Session{Token: "old", ExpiresAt: time.Now().Add(-time.Minute)}))

	c := New(srv.URL, WithSessionStore(store))
	_, err := c.Get(ctx, "/complaint/my", nil)
	require.NoError(t, err)

	assert.Empty(t, srv.lastAuth())
	s, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"error field", http.StatusConflict, `{"status":"error","status_code":409,"error":"Phone number already registered"}`, "Phone number already registered"},
		{"message field", http.StatusNotFound, `{"message":"Complaint not found"}`, "Complaint not found"},
		{"no body", http.StatusInternalServerError, ``, ""},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newRecorder(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := New(srv.URL).Get(context.Background(), "/x", nil)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.Equal(t, tt.body, string(apiErr.Body))
			assert.True(t, IsAPIError(err))
			assert.False(t, IsTransportError(err))
			assert.Equal(t, tt.status, StatusCode(err))
			if tt.message != "" {
				assert.Equal(t, tt.message, UserMessage(err))
			} else {
				assert.Equal(t, genericErrorMessage, UserMessage(err))
			}
		})
	}
}

func TestTimeoutIsTransportError(t *testing.T) {
	release := make(chan struct{})
	srv := newRecorder(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	c := New(srv.URL, WithTimeout(50*time.Millisecond))
	_, err := c.Get(context.Background(), "/dashboard", nil)

	var tErr *TransportError
	require.ErrorAs(t, err, &tErr)
	assert.True(t, tErr.Timeout)
	assert.Equal(t, http.MethodGet, tErr.Op)
	assert.Zero(t, StatusCode(err))
	assert.Equal(t, genericErrorMessage, UserMessage(err))
}

func TestConnectionRefusedIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).Get(context.Background(), "/user", nil)
	assert.True(t, IsTransportError(err))
	assert.False(t, IsAPIError(err))
}

func TestLoginRejectsShortPhoneWithoutRequest(t *testing.T) {
	srv := newRecorder(t, okJSON(`{"token":"t1","user":{"role":"admin"}}`))
	c := New(srv.URL)

	_, err := c.Login(context.Background(), LoginForm{Phone: "12345", Password: "admin123"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Please enter a valid phone number", vErr.Message)

	_, err = c.Login(context.Background(), LoginForm{Phone: "", Password: ""})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Please fill in all fields", vErr.Message)

	assert.Zero(t, srv.count())
}

func TestLoginStoresTokenAndRoutesAdmin(t *testing.T) {
	var body map[string]string
	srv := newRecorder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&body)
		okJSON(`{"token":"t1","user":{"role":"admin"}}`)(w, r)
	})
	store := NewMemoryStore()
	c := New(srv.URL, WithSessionStore(store))

	res, err := c.Login(context.Background(), LoginForm{Phone: "1234567890", Password: "admin123"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"phone": "1234567890", "password": "admin123"}, body)
	assert.Equal(t, model.FlowAdmin, res.Flow)
	s, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "t1", s.Token)
	assert.Equal(t, model.RoleAdmin, s.Role)
	assert.True(t, s.ExpiresAt.IsZero(), "opaque tokens carry no expiry")
}

func TestLoginTakesExpiryFromJWT(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("whatever"))
	require.NoError(t, err)

	srv := newRecorder(t, okJSON(`{"token":"`+token+`","user":{"_id":"u2","role":"user"}}`))
	store := NewMemoryStore()
	res, err := New(srv.URL, WithSessionStore(store)).Login(context.Background(), LoginForm{Phone: "9876543210", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, model.FlowUser, res.Flow)

	s, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, exp.Equal(s.ExpiresAt))
	assert.Equal(t, "u2", s.UserID)
}

func TestLoginFailureKeepsServerMessage(t *testing.T) {
	srv := newRecorder(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","status_code":401,"error":"Invalid phone or password"}`))
	})
	store := NewMemoryStore()
	_, err := New(srv.URL, WithSessionStore(store)).Login(context.Background(), LoginForm{Phone: "1234567890", Password: "nope"})

	assert.Equal(t, "Invalid phone or password", UserMessage(err))
	s, _ := store.Load(context.Background())
	assert.Nil(t, s)
}

func TestLogoutClearsSession(t *testing.T) {
	srv := newRecorder(t, okJSON(`{"status":"success","message":"Logged out"}`))
	store := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, Session{Token: "abc"}))

	require.NoError(t, New(srv.URL, WithSessionStore(store)).Logout(ctx))
	assert.Equal(t, "Bearer abc", srv.lastAuth())
	s, _ := store.Load(ctx)
	assert.Nil(t, s)
}

func TestUpdatePaymentRejectsAdvanceOverAmountWithoutRequest(t *testing.T) {
	srv := newRecorder(t, okJSON(`{"data":{}}`))
	c := New(srv.URL)

	form, err := ParsePaymentForm("500", "1500", model.MethodCash, "")
	require.NoError(t, err)
	_, err = c.UpdatePayment(context.Background(), "c1", form)

	assert.Equal(t, "Advance amount cannot be greater than total amount", UserMessage(err))
	assert.Zero(t, srv.count())
}

func TestListUsersUnwrapsEnvelope(t *testing.T) {
	srv := newRecorder(t, okJSON(`{"data":[{"_id":"u1","role":"admin"},{"_id":"u2","role":"user"}]}`))

	users, err := New(srv.URL).ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []User{{ID: "u2", Role: model.RoleUser}}, AssignableUsers(users))
}

func TestLoginWithoutTokenIsUnexpected(t *testing.T) {
	srv := newRecorder(t, okJSON(`{"user":{"role":"admin"}}`))
	store := NewMemoryStore()

	_, err := New(srv.URL, WithSessionStore(store)).Login(context.Background(), LoginForm{Phone: "1234567890", Password: "pw"})

	assert.ErrorIs(t, err, ErrUnexpectedResponse)
	assert.Equal(t, "Unexpected response from server", UserMessage(err))
	s, _ := store.Load(context.Background())
	assert.Nil(t, s)
}
