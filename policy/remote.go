// Copyright (c) 2026, Fury Engine. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package policy

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"cogentcore.org/core/base/errors"
	"github.com/andreyka-konareyka/FuryEngine-sub000/vehicle"
	"github.com/gorilla/websocket"
)

// RequestTypes are the kinds of [Request] sent to a remote learner.
type RequestTypes string

const (
	RequestPredict RequestTypes = "predict"
	RequestLearn   RequestTypes = "learn"
	RequestSave    RequestTypes = "save"
)

// Request is one message from the simulation to a remote learner.
type Request struct {
	Type        RequestTypes `json:"type"`
	Observation []float32    `json:"observation,omitempty"`
	Reward      float32      `json:"reward"`
	Terminal    bool         `json:"terminal"`
}

// Response is the learner's answer to a [Request].
type Response struct {
	Action vehicle.Action `json:"action"`
	Error  string         `json:"error,omitempty"`
}

// Remote is a [Policy] served by an external learner over a WebSocket
// connection. Each call sends one [Request] and waits for its [Response].
type Remote struct {

	// conn is the underlying WebSocket connection.
	conn *websocket.Conn

	// mu allows one request in flight.
	mu sync.Mutex
}

// Dial connects to a remote learner at the given ws:// URL.
func Dial(url string) (*Remote, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("policy: dial %s: %w", url, err)
	}
	return &Remote{conn: conn}, nil
}

func (r *Remote) call(req Request) (vehicle.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.conn.WriteJSON(req); err != nil {
		return vehicle.ActionNone, err
	}
	var resp Response
	if err := r.conn.ReadJSON(&resp); err != nil {
		return vehicle.ActionNone, err
	}
	if resp.Error != "" {
		return vehicle.ActionNone, fmt.Errorf("policy: remote %s: %s", req.Type, resp.Error)
	}
	if !resp.Action.IsValid() {
		return vehicle.ActionNone, fmt.Errorf("policy: remote returned invalid action %d", int32(resp.Action))
	}
	return resp.Action, nil
}

func (r *Remote) Predict(obs []float32) (vehicle.Action, error) {
	return r.call(Request{Type: RequestPredict, Observation: obs})
}

func (r *Remote) Learn(obs []float32, reward float32, terminal bool) (vehicle.Action, error) {
	return r.call(Request{Type: RequestLearn, Observation: obs, Reward: reward, Terminal: terminal})
}

// Save asks the learner to persist its model.
func (r *Remote) Save() error {
	_, err := r.call(Request{Type: RequestSave})
	return err
}

// Close cleanly closes the connection.
func (r *Remote) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	err := r.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return errors.Join(err, r.conn.Close())
}

var upgrader = websocket.Upgrader{}

// Handler serves p to [Remote] clients: each WebSocket connection is a
// sequence of requests answered in order. Save requests are forwarded
// when p is a [Saver].
func Handler(p Policy) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("policy: upgrade", "err", err)
			return
		}
		defer conn.Close()
		for {
			var req Request
			if err := conn.ReadJSON(&req); err != nil {
				if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					slog.Warn("policy: read request", "err", err)
				}
				return
			}
			resp := serve(p, req)
			if err := conn.WriteJSON(resp); err != nil {
				slog.Warn("policy: write response", "err", err)
				return
			}
		}
	})
}

func serve(p Policy, req Request) Response {
	var a vehicle.Action
	var err error
	switch req.Type {
	case RequestPredict:
		a, err = p.Predict(req.Observation)
	case RequestLearn:
		a, err = p.Learn(req.Observation, req.Reward, req.Terminal)
	case RequestSave:
		if sv, ok := p.(Saver); ok {
			err = sv.Save()
		}
	default:
		err = fmt.Errorf("unknown request type %q", req.Type)
	}
	if err != nil {
		return Response{Error: err.Error()}
	}
	return Response{Action: a}
}
