package op

import "mergeverse/internal/domain/merge"

type gridResponse struct {
	Grid        [merge.GridSlots]int `json:"grid"`
	Inventory   int                  `json:"inventory"`
	TotalMerged int                  `json:"total_merged,omitempty"`
	KingLevel   int                  `json:"king_level"`
	Product     int                  `json:"product"`
	DailyMerges *merge.DailyCounter  `json:"daily_merges,omitempty"`
}

type powerUpResponse struct {
	Grid          [merge.GridSlots]int `json:"grid"`
	PowerUps      []merge.PowerUpKind  `json:"power_ups"`
	KingLevel     int                  `json:"king_level"`
	Product       int                  `json:"product"`
	DailyPowerUps merge.DailyCounter   `json:"daily_powerups"`
}

type stateResponse struct {
	State  merge.PlayerState `json:"state"`
	Reward *merge.Reward     `json:"reward,omitempty"`
}

type profileUpdateResponse struct {
	Status   string  `json:"status"`
	Email    string  `json:"email,omitempty"`
	UserName *string `json:"user_name,omitempty"`
	Avatar   int     `json:"avatar,omitempty"`
}

type dailyResponse struct {
	Daily merge.DailyProgress `json:"daily"`
}

type notificationResponse struct {
	Status          string               `json:"status"`
	NotificationID  string               `json:"notification_id,omitempty"`
	PlayersReferred int                  `json:"players_referred,omitempty"`
	Notifications   []merge.Notification `json:"notifications,omitempty"`
}

type referralResponse struct {
	Status          string `json:"status"`
	Referrer        string `json:"referrer"`
	PlayersReferred int    `json:"players_referred"`
}

type taskResponse struct {
	TaskID              string             `json:"task_id"`
	Annotations         merge.DailyCounter `json:"daily_annotations"`
	TotalTasksCompleted int                `json:"total_tasks_completed"`
	Badges              []merge.Badge      `json:"badges"`
}

type claimResponse struct {
	Tier           int                `json:"tier"`
	CreatureEarned *int               `json:"creature_earned,omitempty"`
	PowerUpEarned  *merge.PowerUpKind `json:"power_up_earned,omitempty"`
	Claimed        bool               `json:"claimed"`
}

type exchangeQuoteResponse struct {
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
}

type exchangeResponse struct {
	TxRef   string `json:"tx_ref"`
	Balance int    `json:"balance"`
}

type syncResponse struct {
	Status string `json:"status"`
}
