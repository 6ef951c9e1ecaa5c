package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"mergeverse/internal/app/actor"
	"mergeverse/internal/app/op"
)

var (
	ErrIdentityMismatch   = errors.New("envelope does not match session identity")
	ErrRegisterOverStream = errors.New("registration is not allowed on a live session")
)

// Conn is the live bidirectional connection. The websocket adapter's
// connection type satisfies it directly.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

const textMessage = 1

// Manager binds one live connection to one actor and keeps the binding valid
// across actor restarts. The caller authenticates the player before handing
// the connection over.
type Manager struct {
	Actors *actor.Registry
	Logger *log.Logger
}

type reply struct {
	OK      bool   `json:"ok"`
	Payload any    `json:"payload,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Run drives one session to completion: bind, serve messages, then flush and
// unbind. It returns when the connection closes or fails.
func (m *Manager) Run(ctx context.Context, playerID string, conn Conn) {
	logger := m.Logger
	if logger == nil {
		logger = log.Default()
	}

	if err := m.Actors.BindSession(ctx, playerID, playerID); err != nil {
		logger.Printf("session bind for %s failed: %v", playerID, err)
		_ = conn.Close()
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		m.write(conn, m.serve(ctx, playerID, data))
	}

	// Clean close and transport error take the same path: reconcile under
	// the bound identity, then drop the binding from memory and store.
	m.flushAndUnbind(ctx, playerID, logger)
	_ = conn.Close()
}

func (m *Manager) serve(ctx context.Context, playerID string, data []byte) reply {
	var env op.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return reply{Error: "malformed envelope"}
	}

	identity, bound, err := m.Actors.SessionIdentity(ctx, playerID)
	if err != nil {
		return reply{Error: "session lookup failed"}
	}
	if !bound || env.PlayerID != identity {
		return reply{Error: ErrIdentityMismatch.Error()}
	}
	if env.Op.Type == op.TypeRegister {
		return reply{Error: ErrRegisterOverStream.Error()}
	}
	if op.IsInternal(env.Op.Type) {
		return reply{Error: "internal op not allowed"}
	}

	payload, err := m.Actors.Dispatch(ctx, env)
	if err != nil {
		return reply{Error: err.Error()}
	}
	return reply{OK: true, Payload: payload}
}

func (m *Manager) write(conn Conn, r reply) {
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	_ = conn.WriteMessage(textMessage, data)
}

func (m *Manager) flushAndUnbind(ctx context.Context, playerID string, logger *log.Logger) {
	identity, bound, err := m.Actors.SessionIdentity(ctx, playerID)
	if err != nil || !bound {
		identity = playerID
	}
	if _, err := m.Actors.Dispatch(ctx, op.Envelope{PlayerID: identity, Op: op.Command{Type: op.TypeSync}}); err != nil {
		logger.Printf("post-session sync for %s failed: %v", identity, err)
	}
	if err := m.Actors.ClearSession(ctx, playerID); err != nil {
		logger.Printf("session clear for %s failed: %v", playerID, err)
	}
}
