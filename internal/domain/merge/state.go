package merge

import (
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const referralCodeLen = 8

const referralAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewReferralCode rolls an 8-character alphanumeric code. Uniqueness is
// enforced by the social table, not here.
func NewReferralCode(rng *rand.Rand) string {
	b := make([]byte, referralCodeLen)
	for i := range b {
		b[i] = referralAlphabet[rng.Intn(len(referralAlphabet))]
	}
	return string(b)
}

// NewPlayerState builds the default aggregate used the first time an actor is
// addressed with no prior snapshot.
func NewPlayerState(playerID string, now time.Time, rng *rand.Rand) PlayerState {
	s := PlayerState{
		Profile: Profile{
			PlayerID:  playerID,
			Avatar:    1,
			LastLogin: now.Unix(),
			RealLogin: now.Unix(),
		},
		Game: GameState{
			Inventory:   30,
			PowerUps:    AllPowerUps(),
			KingLevel:   1,
			TotalMerged: 0,
		},
		Progress: Progress{
			IQ:          40,
			SocialScore: 20,
			Balance:     95,
			Badges:      []Badge{},
		},
		Social: Social{
			ReferralCode: NewReferralCode(rng),
		},
		League:        LeagueBronze,
		Notifications: []Notification{},
	}
	for i := 0; i < 10; i++ {
		s.Game.Grid[i] = 1
	}
	s.RecalcProduct()
	s.Notifications = append(s.Notifications, Notification{
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		Type:      NotificationSystem,
		Message:   "Welcome to the game!",
		Timestamp: now.Unix(),
	})
	return s
}

// SpawnValue is the creature level granted for the given king level.
func SpawnValue(kingLevel int) int {
	v := kingLevel*10 - 3
	if v < 1 {
		v = 1
	}
	return v
}

// GridSum is the total of all occupied slot values.
func (g *GameState) GridSum() int {
	sum := 0
	for _, v := range g.Grid {
		sum += v
	}
	return sum
}

// FirstEmptySlot returns the lowest-index empty slot, or -1 if the grid is full.
func (g *GameState) FirstEmptySlot() int {
	for i, v := range g.Grid {
		if v == 0 {
			return i
		}
	}
	return -1
}

// LowestSlot returns the index of the lowest-value occupied slot. The grid is
// never fully empty in practice; index 0 is returned as a fallback.
func (g *GameState) LowestSlot() int {
	idx := 0
	min := int(^uint(0) >> 1)
	for i, v := range g.Grid {
		if v > 0 && v < min {
			min = v
			idx = i
		}
	}
	return idx
}

// MaxSlotValue returns the highest value currently on the grid.
func (g *GameState) MaxSlotValue() int {
	max := 0
	for _, v := range g.Grid {
		if v > max {
			max = v
		}
	}
	return max
}

// PlaceCreature puts value into the first empty slot, overwriting the
// lowest-value occupied slot when the grid is full.
func (g *GameState) PlaceCreature(value int) int {
	idx := g.FirstEmptySlot()
	if idx < 0 {
		idx = g.LowestSlot()
	}
	g.Grid[idx] = value
	return idx
}

// RandomPowerUp grants one random power-up and returns its kind.
func (g *GameState) RandomPowerUp(rng *rand.Rand) PowerUpKind {
	kinds := AllPowerUps()
	kind := kinds[rng.Intn(len(kinds))]
	g.PowerUps = append(g.PowerUps, kind)
	return kind
}

// AddNotification appends an already-constructed notification.
func (s *PlayerState) AddNotification(n Notification) {
	s.Notifications = append(s.Notifications, n)
}

// HasBadge reports whether the badge was already awarded.
func (p *Progress) HasBadge(b Badge) bool {
	for _, have := range p.Badges {
		if have == b {
			return true
		}
	}
	return false
}

const (
	streakDay     = 24 * time.Hour
	passiveWindow = time.Hour
	passiveGrant  = 3
)

// ApplyLoginStreak advances the streak clock on a state read. A gap of one to
// two days extends the streak, two or more resets it; both grant the daily
// login reward. Within the same day nothing changes.
func (s *PlayerState) ApplyLoginStreak(now time.Time, rng *rand.Rand) *Reward {
	elapsed := now.Unix() - s.Profile.LastLogin
	switch {
	case elapsed > int64(streakDay.Seconds()) && elapsed < int64((2*streakDay).Seconds()):
		s.Progress.Streak++
	case elapsed >= int64((2*streakDay).Seconds()):
		s.Progress.Streak = 0
	default:
		return nil
	}
	s.Profile.LastLogin = now.Unix()
	return s.grantLoginReward(rng)
}

func (s *PlayerState) grantLoginReward(rng *rand.Rand) *Reward {
	s.Progress.Balance += 20
	p1 := s.Game.RandomPowerUp(rng)
	p2 := s.Game.RandomPowerUp(rng)

	reward := &Reward{
		Granted: true,
		Items: map[string]string{
			"balance":  "20",
			"powerup1": string(p1),
			"powerup2": string(p2),
		},
	}
	if s.Progress.Streak > 0 {
		reward.Items["streak"] = strconv.Itoa(s.Progress.Streak)
	}
	return reward
}

// ApplyPassiveGrant tops up the inventory once per hour of wall-clock time,
// keyed on RealLogin so it is idempotent within the gating window.
func (s *PlayerState) ApplyPassiveGrant(now time.Time) *Reward {
	if now.Unix()-s.Profile.RealLogin < int64(passiveWindow.Seconds()) {
		return nil
	}
	s.Profile.RealLogin = now.Unix()
	s.Game.Inventory += passiveGrant
	return &Reward{
		Granted: true,
		Items:   map[string]string{"inventory": strconv.Itoa(passiveGrant)},
	}
}
