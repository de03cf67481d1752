/* Copyright 2024 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package sio

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"github.com/Comcast/trindi/ibis"

	"github.com/gorilla/websocket"
	"golang.org/x/net/publicsuffix"
)

// WebSocket is an IO for one WebSocket connection.
//
// Each incoming text message is one user utterance (either plain text
// or a JSON Utterance).  Output and notices go out as JSON
// Utterances.
type WebSocket struct {
	Verbose bool

	conn *websocket.Conn

	// wmu serializes writes, which gorilla requires.
	wmu sync.Mutex
}

// NewWebSocket wraps an established connection.
func NewWebSocket(conn *websocket.Conn) *WebSocket {
	return &WebSocket{
		conn: conn,
	}
}

// DialWebSocket connects to a WebSocket server.
func DialWebSocket(ctx context.Context, target string) (*WebSocket, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	// A jar keeps any session cookie that the handshake sets (say,
	// for sticky load balancing) in case the caller redials.
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}
	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 45 * time.Second,
		Jar:              jar,
	}
	conn, _, err := dialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return NewWebSocket(conn), nil
}

func (w *WebSocket) logf(format string, args ...interface{}) {
	if w.Verbose {
		log.Printf("WebSocket "+format, args...)
	}
}

// Input implements ibis.IO.  A closed connection is io.EOF.
func (w *WebSocket) Input(ctx context.Context) (string, error) {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// Unblock ReadMessage.
			w.conn.Close()
		case <-done:
		}
	}()

	for {
		_, bs, err := w.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			var ce *websocket.CloseError
			if errors.As(err, &ce) {
				w.logf("closed %d", ce.Code)
				return "", io.EOF
			}
			return "", err
		}
		u := ParseUtterance(bs)
		w.logf("heard %s %q", u.Type, u.Text)
		if u.Type != "input" || u.Text == "" {
			continue
		}
		return u.Text, nil
	}
}

func (w *WebSocket) write(u Utterance) error {
	w.wmu.Lock()
	defer w.wmu.Unlock()
	return w.conn.WriteMessage(websocket.TextMessage, u.bytes())
}

// Output implements ibis.IO.
func (w *WebSocket) Output(ctx context.Context, text string) error {
	return w.write(Utterance{Type: "output", Text: text})
}

// Notice implements ibis.Noticer.
func (w *WebSocket) Notice(ctx context.Context, text string) error {
	return w.write(Utterance{Type: "notice", Text: text})
}

// Send sends user input.  Clients use this method.
func (w *WebSocket) Send(text string) error {
	return w.write(Utterance{Type: "input", Text: text})
}

// Receive waits for the next system Utterance.  Clients use this
// method.
func (w *WebSocket) Receive() (Utterance, error) {
	_, bs, err := w.conn.ReadMessage()
	if err != nil {
		return Utterance{}, err
	}
	return ParseUtterance(bs), nil
}

// Close sends a close message and closes the connection.
func (w *WebSocket) Close() error {
	w.wmu.Lock()
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	w.conn.WriteMessage(websocket.CloseMessage, msg)
	w.wmu.Unlock()
	return w.conn.Close()
}

// WebSocketService runs a fresh DME for each WebSocket connection.
type WebSocketService struct {
	// NewDME makes the DME for a connection.
	NewDME func(port ibis.IO) (*ibis.DME, error)

	Verbose bool

	upgrader websocket.Upgrader
}

// ServeHTTP implements http.Handler.
func (s *WebSocketService) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		log.Println("upgrade error", err)
		return
	}
	port := NewWebSocket(conn)
	port.Verbose = s.Verbose
	defer port.Close()

	d, err := s.NewDME(port)
	if err != nil {
		log.Println("NewDME error", err)
		return
	}

	if s.Verbose {
		log.Printf("WebSocketService dialogue with %s", conn.RemoteAddr())
	}
	if err = d.Run(r.Context()); err != nil {
		log.Printf("WebSocketService dialogue with %s: %s", conn.RemoteAddr(), err)
	}
}
