package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/websocket"

	"mergeverse/internal/app/actor"
	"mergeverse/internal/app/auth"
	"mergeverse/internal/app/op"
	"mergeverse/internal/app/ports"
	"mergeverse/internal/app/session"
)

const userNameHeader = "username"
const passwordHeader = "password"

var (
	ErrMissingCredentials = errors.New("missing username or password header")
	ErrAlreadyRegistered  = errors.New("player already registered")
	ErrPlayerMismatch     = errors.New("envelope player does not match credentials")
	ErrRegisterPath       = errors.New("registration only via the register endpoint")
	ErrInternalOp         = errors.New("internal op not accepted from clients")
)

type Handler struct {
	AuthUC   auth.VerifyUseCase
	Records  ports.PlayerRecordRepository
	Actors   *actor.Registry
	Sessions *session.Manager
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	game := s.Group("/api/game")
	game.POST("/register", h.register)
	game.POST("/op", h.op)
	game.GET("/ws", h.ws)

	s.GET("/ops/kpi", h.kpi)
}

type registerRequest struct {
	PlayerID string  `json:"player_id"`
	Password string  `json:"password"`
	UserName *string `json:"user_name,omitempty"`
}

// register is the only path that creates credentials. The ws path rejects
// registration so a live session cannot race a one-shot register.
func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	var body registerRequest
	if err := decodeJSON(ctx, &body); err != nil || body.PlayerID == "" {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}

	registered, err := h.Records.IsRegistered(c, body.PlayerID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if registered {
		writeError(ctx, ErrAlreadyRegistered)
		return
	}

	payload, err := h.Actors.Dispatch(c, op.Envelope{
		PlayerID: body.PlayerID,
		Op:       op.Command{Type: op.TypeRegister, Password: body.Password, UserName: body.UserName},
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, payload)
}

func (h Handler) op(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.verifyCredentials(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	var env op.Envelope
	if err := decodeJSON(ctx, &env); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if env.PlayerID == "" {
		env.PlayerID = playerID
	}
	if env.PlayerID != playerID {
		writeError(ctx, ErrPlayerMismatch)
		return
	}
	if env.Op.Type == op.TypeRegister {
		writeError(ctx, ErrRegisterPath)
		return
	}
	if op.IsInternal(env.Op.Type) {
		writeError(ctx, ErrInternalOp)
		return
	}

	payload, err := h.Actors.Dispatch(c, env)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, payload)
}

var upgrader = websocket.HertzUpgrader{}

func (h Handler) ws(c context.Context, ctx *app.RequestContext) {
	playerID, err := h.verifyCredentials(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}

	err = upgrader.Upgrade(ctx, func(conn *websocket.Conn) {
		// The request context dies with the upgrade handshake; the session
		// outlives it.
		h.Sessions.Run(context.Background(), playerID, conn)
	})
	if err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "upgrade_failed", err.Error())
	}
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) verifyCredentials(c context.Context, ctx *app.RequestContext) (string, error) {
	username := strings.TrimSpace(string(ctx.GetHeader(userNameHeader)))
	password := string(ctx.GetHeader(passwordHeader))
	if username == "" || password == "" {
		return "", ErrMissingCredentials
	}
	return h.AuthUC.Execute(c, auth.VerifyRequest{UserName: username, Password: password})
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_credentials", err.Error())
	case errors.Is(err, auth.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_credentials", err.Error())
	case errors.Is(err, ErrPlayerMismatch):
		writeErrorBody(ctx, consts.StatusForbidden, "player_mismatch", err.Error())
	case errors.Is(err, ErrAlreadyRegistered):
		writeErrorBody(ctx, consts.StatusConflict, "already_registered", err.Error())
	case errors.Is(err, ErrRegisterPath), errors.Is(err, ErrInternalOp):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, op.ErrUnknownOp):
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_op", err.Error())
	case errors.Is(err, op.ErrInvalidReferral), errors.Is(err, op.ErrUnknownTask),
		errors.Is(err, op.ErrUnknownNotification):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, op.ErrTaskCompleted), errors.Is(err, op.ErrDailyTooSoon),
		errors.Is(err, op.ErrRewardLocked):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	case op.IsRejection(err):
		writeErrorBody(ctx, consts.StatusBadRequest, "rejected", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
