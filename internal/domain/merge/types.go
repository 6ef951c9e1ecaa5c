package merge

// GridSlots is the fixed size of the active creature grid. A slot value of
// zero means the slot is empty.
const GridSlots = 16

// GridWidth is the edge length of the square grid used by area power-ups.
const GridWidth = 4

type PowerUpKind string

const (
	PowerUpRow    PowerUpKind = "row"
	PowerUpColumn PowerUpKind = "column"
	PowerUpSquare PowerUpKind = "square"
)

// AllPowerUps lists every power-up kind, used when rolling a random grant.
func AllPowerUps() []PowerUpKind {
	return []PowerUpKind{PowerUpRow, PowerUpColumn, PowerUpSquare}
}

type Badge string

const (
	BadgeTenTasks    Badge = "ten_tasks"
	BadgeTwentyTasks Badge = "twenty_tasks"
	BadgeThirtyTasks Badge = "thirty_tasks"
)

type League string

const (
	LeagueBronze      League = "bronze"
	LeagueSilver      League = "silver"
	LeagueGold        League = "gold"
	LeaguePlatinum    League = "platinum"
	LeagueDiamond     League = "diamond"
	LeagueMaster      League = "master"
	LeagueGrandMaster League = "grandmaster"
	LeagueChallenger  League = "challenger"
)

type NotificationType string

const (
	NotificationReferral    NotificationType = "referral"
	NotificationPerformance NotificationType = "performance"
	NotificationSystem      NotificationType = "system"
)

type Notification struct {
	ID        string            `json:"notification_id"`
	PlayerID  string            `json:"player_id"`
	Type      NotificationType  `json:"type"`
	Message   string            `json:"message"`
	Timestamp int64             `json:"timestamp"`
	Read      bool              `json:"read"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

type Profile struct {
	PlayerID     string  `json:"player_id"`
	UserName     *string `json:"user_name,omitempty"`
	Email        *string `json:"email,omitempty"`
	PasswordHash *string `json:"password_hash,omitempty"`
	Avatar       int     `json:"avatar"`
	// LastLogin gates the daily streak and daily-task generation.
	LastLogin int64 `json:"last_login"`
	// RealLogin gates the hourly passive inventory grant, independently of
	// the streak clock.
	RealLogin int64 `json:"real_login"`
}

type GameState struct {
	Grid        [GridSlots]int `json:"grid"`
	Inventory   int            `json:"inventory"`
	PowerUps    []PowerUpKind  `json:"power_ups"`
	KingLevel   int            `json:"king_level"`
	TotalMerged int            `json:"total_merged"`
}

type Progress struct {
	IQ                  int     `json:"iq"`
	SocialScore         int     `json:"social_score"`
	Product             int     `json:"product"`
	AllTasksDone        bool    `json:"all_tasks_done"`
	Balance             int     `json:"balance"`
	TotalTasksCompleted int     `json:"total_tasks_completed"`
	Streak              int     `json:"streak"`
	Badges              []Badge `json:"badges"`
}

type Social struct {
	PlayersReferred int    `json:"players_referred"`
	ReferralCode    string `json:"referral_code"`
}

type SocialPlatform string

const (
	PlatformYouTube   SocialPlatform = "youtube"
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformInstagram SocialPlatform = "instagram"
	PlatformTelegram  SocialPlatform = "telegram"
	PlatformDiscord   SocialPlatform = "discord"
)

type LinkTask struct {
	URL      string         `json:"url"`
	Platform SocialPlatform `json:"platform"`
	Visited  bool           `json:"visited"`
}

type McqQuestion struct {
	Question string   `json:"q"`
	Answer   string   `json:"a"`
	Choices  []string `json:"choices,omitempty"`
}

type McqTask struct {
	ID        string        `json:"id"`
	TaskID    string        `json:"task_id"`
	MediaURL  string        `json:"media_url"`
	Summary   string        `json:"summary"`
	Keywords  []string      `json:"keywords,omitempty"`
	Questions []McqQuestion `json:"questions"`
	Visited   bool          `json:"visited"`
}

type TextTask struct {
	DatapointID   string `json:"datapoint_id"`
	QuestionIndex int    `json:"question_index"`
	Question      string `json:"question"`
	MediaURL      string `json:"media_url"`
	Visited       bool   `json:"visited"`
}

// DailyCounter tracks one daily objective as (current, target, completed).
type DailyCounter struct {
	Current   int  `json:"current"`
	Target    int  `json:"target"`
	Completed bool `json:"completed"`
}

type DailyProgress struct {
	Links          []LinkTask   `json:"links"`
	McqTasks       []McqTask    `json:"mcq_tasks"`
	TextTasks      []TextTask   `json:"text_tasks"`
	Merges         DailyCounter `json:"merges"`
	Annotations    DailyCounter `json:"annotations"`
	PowerUps       DailyCounter `json:"power_ups"`
	TotalCompleted int          `json:"total_completed"`
	CreatureEarned *int         `json:"creature_earned,omitempty"`
	PowerUpEarned  *PowerUpKind `json:"power_up_earned,omitempty"`
	LastGeneration int64        `json:"last_generation"`
}

// PlayerState is the full aggregate for one player. It is owned and mutated
// by exactly one actor; everything outside the actor sees copies.
type PlayerState struct {
	Profile       Profile        `json:"profile"`
	Game          GameState      `json:"game_state"`
	Progress      Progress       `json:"progress"`
	Social        Social         `json:"social"`
	League        League         `json:"league"`
	Notifications []Notification `json:"notifications"`
	Daily         DailyProgress  `json:"daily"`
}

// Reward is a bag of human-readable grants attached to a response when a
// time-gated bonus fired during the command.
type Reward struct {
	Granted bool              `json:"granted"`
	Items   map[string]string `json:"items,omitempty"`
}
