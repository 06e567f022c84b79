// SPDX-License-Identifier: Apache-2.0
// Copyright 2020,2021 Marcus Soll
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	  http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// SpectatePath is the websocket endpoint of spectateUI.
	SpectatePath = "/ws"

	spectateWriteWait  = 1 * time.Second
	spectateSendBuffer = 8
)

const (
	messageSession = "session"
	messageFrame   = "frame"
	messageFinish  = "finish"
)

// spectateMessage is sent as JSON to all spectators.
type spectateMessage struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	Mode    Mode   `json:"mode"`
	Frame   *Frame `json:"frame,omitempty"`
}

type spectator struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

// spectateUI streams all frames read-only to websocket clients.
// Spectators that can not keep up miss frames, the game never waits for them.
type spectateUI struct {
	Addr string
	UI   UI

	upgrader websocket.Upgrader
	listener net.Listener
	server   *http.Server

	mu      sync.Mutex
	clients map[string]*spectator
	hello   []byte
	closed  bool
}

func (s *spectateUI) Initialise() error {
	s.clients = make(map[string]*spectator)
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		// Spectating is read-only
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	var err error
	s.listener, err = net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("spectate: listening on %s: %w", s.Addr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(SpectatePath, s.handle)
	s.server = &http.Server{Handler: mux}
	go func() {
		err := s.server.Serve(s.listener)
		if err != nil && err != http.ErrServerClosed {
			log.Println("spectate:", err)
		}
	}()

	if s.UI != nil {
		return s.UI.Initialise()
	}
	return nil
}

// ListenAddr returns the address spectators connect to.
func (s *spectateUI) ListenAddr() string {
	if s.listener == nil {
		return s.Addr
	}
	return s.listener.Addr().String()
}

func (s *spectateUI) handle(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("spectate: upgrade: %v", err)
		return
	}

	c := &spectator{
		id:   uuid.New().String(),
		ws:   ws,
		send: make(chan []byte, spectateSendBuffer),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ws.Close()
		return
	}
	s.clients[c.id] = c
	if s.hello != nil {
		c.send <- s.hello
	}
	s.mu.Unlock()
	log.Printf("spectate: %s connected from %s", c.id, r.RemoteAddr)

	go s.writeLoop(c)
	go s.readLoop(c)
}

func (s *spectateUI) writeLoop(c *spectator) {
	defer c.ws.Close()
	for msg := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(spectateWriteWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
			s.remove(c.id)
			// Drain until remove closed the channel
			for range c.send {
			}
			return
		}
	}
	c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over"),
		time.Now().Add(spectateWriteWait))
}

// readLoop only detects closed connections, spectators can not send anything meaningful.
func (s *spectateUI) readLoop(c *spectator) {
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("spectate: %s: %v", c.id, err)
			}
			s.remove(c.id)
			return
		}
	}
}

func (s *spectateUI) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[id]
	if !ok {
		return
	}
	delete(s.clients, id)
	close(c.send)
}

func (s *spectateUI) broadcast(m spectateMessage) {
	b, err := json.Marshal(m)
	if err != nil {
		log.Println("spectate:", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if m.Type == messageSession {
		s.hello = b
	}
	for _, c := range s.clients {
		select {
		case c.send <- b:
		default:
			// Too slow, skip frame
		}
	}
}

// Spectators returns the number of connected spectators.
func (s *spectateUI) Spectators() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *spectateUI) NewSession(id string, mode Mode) {
	s.broadcast(spectateMessage{Type: messageSession, Session: id, Mode: mode})
	if s.UI != nil {
		s.UI.NewSession(id, mode)
	}
}

func (s *spectateUI) NewFrame(f Frame) {
	s.broadcast(spectateMessage{Type: messageFrame, Session: f.Session, Mode: f.Mode, Frame: &f})
	if s.UI != nil {
		s.UI.NewFrame(f)
	}
}

func (s *spectateUI) Finish(f Frame) error {
	s.broadcast(spectateMessage{Type: messageFinish, Session: f.Session, Mode: f.Mode, Frame: &f})

	s.mu.Lock()
	s.closed = true
	for id, c := range s.clients {
		delete(s.clients, id)
		close(c.send)
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), spectateWriteWait)
	defer cancel()
	err := s.server.Shutdown(ctx)

	if s.UI != nil {
		newErr := s.UI.Finish(f)
		if newErr != nil {
			err = newErr
		}
	}
	return err
}

func (s *spectateUI) Wait() {
	if s.UI != nil {
		s.UI.Wait()
	}
}
