package model

// Hand-maintained models mirroring migrations/0001_init.sql. Regenerate with
// tools/modelgen after a schema change.

type PlayerProfile struct {
	PlayerID     string  `gorm:"column:player_id;primaryKey"`
	UserName     *string `gorm:"column:user_name"`
	Email        *string `gorm:"column:email"`
	PasswordHash *string `gorm:"column:password_hash"`
	Avatar       int32   `gorm:"column:avatar"`
	LastLogin    int64   `gorm:"column:last_login"`
	RealLogin    int64   `gorm:"column:real_login"`
}

func (PlayerProfile) TableName() string { return "profiles" }

type PlayerGameState struct {
	PlayerID    string `gorm:"column:player_id;primaryKey"`
	Grid        string `gorm:"column:grid"`
	Inventory   int32  `gorm:"column:inventory"`
	PowerUps    string `gorm:"column:power_ups"`
	KingLevel   int32  `gorm:"column:king_level"`
	TotalMerged int32  `gorm:"column:total_merged"`
}

func (PlayerGameState) TableName() string { return "game_states" }

type PlayerProgress struct {
	PlayerID            string `gorm:"column:player_id;primaryKey"`
	IQ                  int32  `gorm:"column:iq"`
	SocialScore         int32  `gorm:"column:social_score"`
	Product             int32  `gorm:"column:product"`
	AllTasksDone        bool   `gorm:"column:all_tasks_done"`
	Balance             int32  `gorm:"column:balance"`
	TotalTasksCompleted int32  `gorm:"column:total_tasks_completed"`
	Streak              int32  `gorm:"column:streak"`
	Badges              string `gorm:"column:badges"`
}

func (PlayerProgress) TableName() string { return "progress" }

type PlayerSocial struct {
	PlayerID        string `gorm:"column:player_id;primaryKey"`
	PlayersReferred int32  `gorm:"column:players_referred"`
	ReferralCode    string `gorm:"column:referral_code;uniqueIndex"`
}

func (PlayerSocial) TableName() string { return "socials" }

type PlayerLeague struct {
	PlayerID string `gorm:"column:player_id;primaryKey"`
	League   string `gorm:"column:league"`
}

func (PlayerLeague) TableName() string { return "leagues" }
