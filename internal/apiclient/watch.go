package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"strings"

	"github.com/gorilla/websocket"
)

// Event is one complaint change pushed by the server
type Event struct {
	Type      string     `json:"type"`
	Complaint *Complaint `json:"complaint"`
}

var ErrNotLoggedIn = errors.New("not logged in")

// Watch subscribes to complaint events and calls fn for each until ctx is
// done or the connection drops. It needs a live session.
func (c *Client) Watch(ctx context.Context, fn func(Event)) error {
	session, err := c.Session(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrNotLoggedIn
	}

	wsURL, err := c.websocketURL(session.Token)
	if err != nil {
		return err
	}
	dialer := websocket.Dialer{HandshakeTimeout: c.http.Timeout}
	conn, resp, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if resp != nil {
			return &APIError{StatusCode: resp.StatusCode}
		}
		return &TransportError{Op: "WS", URL: c.baseURL + "/ws", Err: err}
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return &TransportError{Op: "WS", URL: c.baseURL + "/ws", Err: err}
		}
		var ev Event
		if err := json.Unmarshal(msg, &ev); err != nil {
			c.logger.DebugContext(ctx, "skipping undecodable event", "error", err)
			continue
		}
		fn(ev)
	}
}

func (c *Client) websocketURL(token string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimRight(u.Path, "/") + "/ws"
	u.RawQuery = url.Values{"token": {token}}.Encode()
	return u.String(), nil
}
