package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"mergeverse/internal/app/op"
	"mergeverse/internal/app/ports"
)

var (
	ErrInvalidRequest     = errors.New("invalid auth request")
	ErrInvalidCredentials = errors.New("invalid player credentials")
)

type VerifyRequest struct {
	UserName string
	Password string
}

// VerifyUseCase checks header credentials against the relational profile row
// and resolves the player id. Used at session upgrade and on the one-shot
// command path.
type VerifyUseCase struct {
	Records ports.PlayerRecordRepository
}

func (u VerifyUseCase) Execute(ctx context.Context, req VerifyRequest) (string, error) {
	req.UserName = strings.TrimSpace(req.UserName)
	if req.UserName == "" || req.Password == "" || u.Records == nil {
		return "", ErrInvalidRequest
	}

	cred, err := u.Records.GetCredentials(ctx, req.UserName)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	hash := op.HashPassword(req.Password)
	if subtle.ConstantTimeCompare([]byte(hash), []byte(cred.PasswordHash)) != 1 {
		return "", ErrInvalidCredentials
	}
	return cred.PlayerID, nil
}
