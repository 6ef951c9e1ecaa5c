package memory

import (
	"context"

	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

type PlayerRecordRepo struct {
	store *Store
}

func NewPlayerRecordRepo(store *Store) PlayerRecordRepo {
	return PlayerRecordRepo{store: store}
}

var _ ports.PlayerRecordRepository = PlayerRecordRepo{}

func (r PlayerRecordRepo) UpsertProfile(_ context.Context, playerID string, p merge.Profile) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.profiles[playerID] = p
	return nil
}

func (r PlayerRecordRepo) UpsertGameState(_ context.Context, playerID string, g merge.GameState) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.games[playerID] = g
	return nil
}

func (r PlayerRecordRepo) UpsertProgress(_ context.Context, playerID string, p merge.Progress) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.progress[playerID] = p
	return nil
}

func (r PlayerRecordRepo) UpsertSocial(_ context.Context, playerID string, s merge.Social) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.socials[playerID] = s
	return nil
}

func (r PlayerRecordRepo) UpsertLeague(_ context.Context, playerID string, l merge.League) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.leagues[playerID] = l
	return nil
}

func (r PlayerRecordRepo) IsRegistered(_ context.Context, playerID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.profiles[playerID]
	return ok && p.PasswordHash != nil, nil
}

func (r PlayerRecordRepo) GetCredentials(_ context.Context, username string) (ports.PlayerCredentials, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for id, p := range r.store.profiles {
		matches := id == username || (p.UserName != nil && *p.UserName == username)
		if matches && p.PasswordHash != nil {
			return ports.PlayerCredentials{
				PlayerID:     id,
				UserName:     p.UserName,
				PasswordHash: *p.PasswordHash,
			}, nil
		}
	}
	return ports.PlayerCredentials{}, ports.ErrNotFound
}

func (r PlayerRecordRepo) FindPlayerByReferralCode(_ context.Context, code string) (string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for id, s := range r.store.socials {
		if s.ReferralCode == code {
			return id, nil
		}
	}
	return "", ports.ErrNotFound
}

func (r PlayerRecordRepo) ListPlayerIDs(_ context.Context) ([]string, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	ids := make([]string, 0, len(r.store.profiles))
	for id := range r.store.profiles {
		ids = append(ids, id)
	}
	return ids, nil
}
