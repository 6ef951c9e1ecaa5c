package op

import "mergeverse/internal/domain/merge"

// Type tags one game command.
type Type string

const (
	TypeMerge              Type = "merge"
	TypeSpawnInventory     Type = "spawn_inventory"
	TypePlaceFromInventory Type = "place_from_inventory"
	TypeDeleteSlot         Type = "delete_slot"
	TypeSwapSlots          Type = "swap_slots"
	TypeUsePowerUp         Type = "use_powerup"

	TypeRegister       Type = "register"
	TypeUpdateEmail    Type = "update_email"
	TypeUpdateUserName Type = "update_username"
	TypeUpdatePassword Type = "update_password"
	TypeUpdateAvatar   Type = "update_avatar"
	TypeGetState       Type = "get_state"
	TypePing           Type = "ping"

	TypeGenerateDaily    Type = "generate_daily"
	TypeCheckDaily       Type = "check_daily"
	TypeSubmitMcq        Type = "submit_mcq"
	TypeSubmitText       Type = "submit_text"
	TypeClaimDailyReward Type = "claim_daily_reward"

	TypeUseReferral          Type = "use_referral"
	TypeApplyNotification    Type = "apply_notification"
	TypeMarkNotificationRead Type = "mark_notification_read"
	TypeConsumeNotification  Type = "consume_notification"

	TypeSync          Type = "sync"
	TypeQuoteExchange Type = "quote_exchange"
	TypeExchange      Type = "exchange"
)

// Command is the tagged request describing one game action. Only the fields
// relevant to Type are read; the rest stay at their zero value.
type Command struct {
	Type Type `json:"type"`

	SlotA        int `json:"slot_a,omitempty"`
	SlotB        int `json:"slot_b,omitempty"`
	From         int `json:"from,omitempty"`
	To           int `json:"to,omitempty"`
	Slot         int `json:"slot,omitempty"`
	PowerUpIndex int `json:"powerup_index,omitempty"`
	TargetSlot   int `json:"target_slot,omitempty"`

	Password string  `json:"password,omitempty"`
	Email    string  `json:"email,omitempty"`
	UserName *string `json:"user_name,omitempty"`
	Avatar   int     `json:"avatar,omitempty"`

	URL           string         `json:"url,omitempty"`
	TaskID        string         `json:"task_id,omitempty"`
	Answers       map[int]string `json:"answers,omitempty"`
	QuestionIndex int            `json:"question_index,omitempty"`
	Text          string         `json:"text,omitempty"`
	Tier          int            `json:"tier,omitempty"`

	Code           string              `json:"code,omitempty"`
	Notification   *merge.Notification `json:"notification,omitempty"`
	NotificationID string              `json:"notification_id,omitempty"`

	Amount  int    `json:"amount,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
	Address string `json:"address,omitempty"`
}

// Envelope addresses one command at one player's actor. Internally generated
// commands (notification delivery, scheduled reads) use the same shape.
type Envelope struct {
	PlayerID string  `json:"player_id"`
	Op       Command `json:"op"`
}

// Outbound is a cross-actor side effect queued during a reduction and
// dispatched by the actor only after the command committed.
type Outbound struct {
	TargetPlayerID string
	Notification   merge.Notification
}

// Result carries the response payload plus everything the actor needs to
// finish the command: whether state must be persisted and which cross-actor
// messages to dispatch.
type Result struct {
	Payload any
	Mutated bool
	Outbox  []Outbound
}
