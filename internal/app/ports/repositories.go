package ports

import (
	"context"

	"mergeverse/internal/domain/merge"
)

// PlayerRecordRepository is the relational store used for cross-player
// queries. Each Upsert targets one logical sub-table keyed by player id;
// callers treat the writes as independent (partial failure does not roll
// back, the actor's own store stays authoritative).
type PlayerRecordRepository interface {
	UpsertProfile(ctx context.Context, playerID string, p merge.Profile) error
	UpsertGameState(ctx context.Context, playerID string, g merge.GameState) error
	UpsertProgress(ctx context.Context, playerID string, p merge.Progress) error
	UpsertSocial(ctx context.Context, playerID string, s merge.Social) error
	UpsertLeague(ctx context.Context, playerID string, l merge.League) error

	IsRegistered(ctx context.Context, playerID string) (bool, error)
	GetCredentials(ctx context.Context, username string) (PlayerCredentials, error)
	FindPlayerByReferralCode(ctx context.Context, code string) (string, error)
	ListPlayerIDs(ctx context.Context) ([]string, error)
}

// PlayerCredentials is the credential row consulted by the auth usecase.
type PlayerCredentials struct {
	PlayerID     string
	UserName     *string
	PasswordHash string
}

// ActorStateStore is the actor's private durable store: one key holds the
// serialized aggregate, a second holds the bound session identity.
type ActorStateStore interface {
	GetState(ctx context.Context, playerID string) ([]byte, bool, error)
	PutState(ctx context.Context, playerID string, data []byte) error

	GetSessionIdentity(ctx context.Context, playerID string) (string, bool, error)
	PutSessionIdentity(ctx context.Context, playerID, identity string) error
	ClearSessionIdentity(ctx context.Context, playerID string) error
}
