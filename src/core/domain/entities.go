package domain

import "time"

// TradeStatus represents lifecycle of a trade.
type TradeStatus string

const (
	TradePending   TradeStatus = "PENDING"
	TradeCompleted TradeStatus = "COMPLETED"
	TradeCancelled TradeStatus = "CANCELLED"
)

// HabitFrequency controls how a habit streak advances.
type HabitFrequency string

const (
	HabitDaily  HabitFrequency = "DAILY"
	HabitWeekly HabitFrequency = "WEEKLY"
)

// InventoryCategory is a trainer inventory bucket.
type InventoryCategory string

const (
	CategoryItems     InventoryCategory = "items"
	CategoryBalls     InventoryCategory = "balls"
	CategoryBerries   InventoryCategory = "berries"
	CategoryPastries  InventoryCategory = "pastries"
	CategoryEvolution InventoryCategory = "evolution"
	CategoryEggs      InventoryCategory = "eggs"
	CategoryAntiques  InventoryCategory = "antiques"
	CategoryHeldItems InventoryCategory = "helditems"
	CategorySeals     InventoryCategory = "seals"
)

// ValidCategory reports whether c is a known inventory category.
func ValidCategory(c InventoryCategory) bool {
	switch c {
	case CategoryItems, CategoryBalls, CategoryBerries, CategoryPastries,
		CategoryEvolution, CategoryEggs, CategoryAntiques, CategoryHeldItems, CategorySeals:
		return true
	}
	return false
}

// Boss is the shared raid boss. At most one boss is active system-wide;
// activating a new boss deactivates all others. A boss transitions to
// defeated exactly when current health reaches zero and never comes back.
type Boss struct {
	ID            int64      `json:"boss_id"`
	Name          string     `json:"name"`
	FlavorText    string     `json:"flavor_text"`
	ImageURL      string     `json:"image_url"`
	MaxHealth     int64      `json:"max_health"`
	CurrentHealth int64      `json:"current_health"`
	IsActive      bool       `json:"is_active"`
	IsDefeated    bool       `json:"is_defeated"`
	Month         int        `json:"month"`
	Year          int        `json:"year"`
	DefeatedAt    *time.Time `json:"defeated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// BossDamage is an append-only damage log entry. TotalDamage is the
// player's running cumulative damage against the boss at write time.
type BossDamage struct {
	ID          int64     `json:"damage_id"`
	BossID      int64     `json:"boss_id"`
	PlayerID    string    `json:"player_id"`
	TrainerID   *int64    `json:"trainer_id,omitempty"`
	Amount      int64     `json:"amount"`
	TotalDamage int64     `json:"total_damage"`
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
}

// DamageSummary aggregates one player's contribution to a boss.
type DamageSummary struct {
	PlayerID    string     `json:"player_id"`
	TotalDamage int64      `json:"total_damage"`
	FirstHitAt  time.Time  `json:"first_hit_at"`
	LastHitAt   *time.Time `json:"last_hit_at,omitempty"`
}

// RewardItem is a single item grant inside a reward payload or template.
type RewardItem struct {
	Name        string            `json:"name"`
	Quantity    int               `json:"quantity"`
	Description string            `json:"description,omitempty"`
	Category    InventoryCategory `json:"category"`
}

// StaticMonsterSpec fully describes a monster to create directly,
// without a random roll.
type StaticMonsterSpec struct {
	Species1  string `json:"species1"`
	Species2  string `json:"species2,omitempty"`
	Species3  string `json:"species3,omitempty"`
	Type1     string `json:"type1"`
	Type2     string `json:"type2,omitempty"`
	Type3     string `json:"type3,omitempty"`
	Type4     string `json:"type4,omitempty"`
	Type5     string `json:"type5,omitempty"`
	Attribute string `json:"attribute,omitempty"`
}

// RewardMonster is a monster grant. When Static is nil the species and
// types are rolled from the catalog at claim time; Special biases the
// roll toward rarer species.
type RewardMonster struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Special     bool               `json:"is_special"`
	Static      *StaticMonsterSpec `json:"static,omitempty"`
}

// RewardTemplate is a reusable bundle of rewards assignable to bosses.
// Templates flagged TopDamagerOnly apply only to the highest-damage player.
type RewardTemplate struct {
	ID             int64           `json:"template_id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Coins          int64           `json:"coins"`
	Levels         int             `json:"levels"`
	Items          []RewardItem    `json:"items"`
	Monsters       []RewardMonster `json:"monsters"`
	TopDamagerOnly bool            `json:"is_top_damager"`
	CreatedAt      time.Time       `json:"created_at"`
}

// BossReward is the per-(boss, trainer) reward row created on the defeat
// transition. Claiming flips IsClaimed exactly once.
type BossReward struct {
	ID        int64           `json:"reward_id"`
	BossID    int64           `json:"boss_id"`
	TrainerID int64           `json:"trainer_id"`
	Coins     int64           `json:"coins"`
	Levels    int             `json:"levels"`
	Items     []RewardItem    `json:"items"`
	Monsters  []RewardMonster `json:"monsters"`
	IsClaimed bool            `json:"is_claimed"`
	ClaimedAt *time.Time      `json:"claimed_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ItemBundle maps inventory category to item name to quantity.
type ItemBundle map[InventoryCategory]map[string]int

// Empty reports whether the bundle carries no items at all.
func (b ItemBundle) Empty() bool {
	for _, items := range b {
		for _, qty := range items {
			if qty > 0 {
				return false
			}
		}
	}
	return true
}

// Trade is a proposed exchange between two trainers. Created pending;
// settled to completed via processing or cancelled, exactly once.
type Trade struct {
	ID             int64       `json:"trade_id"`
	InitiatorID    int64       `json:"initiator_id"`
	RecipientID    int64       `json:"recipient_id"`
	Status         TradeStatus `json:"status"`
	OfferedMons    []int64     `json:"offered_mons"`
	RequestedMons  []int64     `json:"requested_mons"`
	OfferedItems   ItemBundle  `json:"offered_items"`
	RequestedItems ItemBundle  `json:"requested_items"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Validate enforces trade creation invariants: both parties present,
// distinct, and at least one non-empty collection.
func (t *Trade) Validate() error {
	if t.InitiatorID == 0 {
		return NewValidationError("initiator_id", "initiator is required")
	}
	if t.RecipientID == 0 {
		return NewValidationError("recipient_id", "recipient is required")
	}
	if t.InitiatorID == t.RecipientID {
		return NewValidationError("recipient_id", "cannot trade with yourself")
	}
	if len(t.OfferedMons) == 0 && len(t.RequestedMons) == 0 &&
		t.OfferedItems.Empty() && t.RequestedItems.Empty() {
		return NewValidationError("trade", "trade must include at least one monster or item")
	}
	return nil
}

// Normalize replaces absent collections with their canonical empty form.
func (t *Trade) Normalize() {
	if t.OfferedMons == nil {
		t.OfferedMons = []int64{}
	}
	if t.RequestedMons == nil {
		t.RequestedMons = []int64{}
	}
	if t.OfferedItems == nil {
		t.OfferedItems = ItemBundle{}
	}
	if t.RequestedItems == nil {
		t.RequestedItems = ItemBundle{}
	}
}

// Trainer is a player-owned in-game character. A player may own several
// trainers; the highest-level one is the player's principal trainer for
// reward purposes.
type Trainer struct {
	ID          int64     `json:"id"`
	PlayerID    string    `json:"player_id"`
	Name        string    `json:"name"`
	Level       int       `json:"level"`
	Currency    int64     `json:"currency"`
	TotalEarned int64     `json:"total_earned"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Inventory is a trainer's per-category item holdings. Quantities are
// always positive; an entry disappears when its quantity reaches zero.
type Inventory struct {
	TrainerID int64                                `json:"trainer_id"`
	Items     map[InventoryCategory]map[string]int `json:"items"`
}

// Monster is a collectible owned by exactly one trainer at a time.
type Monster struct {
	ID          int64     `json:"mon_id"`
	TrainerID   int64     `json:"trainer_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Level       int       `json:"level"`
	BoxNumber   int       `json:"box_number"`
	IsSpecial   bool      `json:"is_special"`
	Species1    string    `json:"species1"`
	Species2    *string   `json:"species2,omitempty"`
	Species3    *string   `json:"species3,omitempty"`
	Type1       string    `json:"type1"`
	Type2       *string   `json:"type2,omitempty"`
	Type3       *string   `json:"type3,omitempty"`
	Type4       *string   `json:"type4,omitempty"`
	Type5       *string   `json:"type5,omitempty"`
	Attribute   string    `json:"attribute"`
	CreatedAt   time.Time `json:"created_at"`
}

// Species is a catalog row the random roller draws from.
type Species struct {
	ID          int64   `json:"species_id"`
	Name        string  `json:"name"`
	MonsterType string  `json:"monster_type"`
	Rarity      string  `json:"rarity"`
	Stage       string  `json:"stage"`
	Type1       string  `json:"type1"`
	Type2       *string `json:"type2,omitempty"`
	Attribute   string  `json:"attribute"`
}

// Item is a catalog entry used for category lookups.
type Item struct {
	ID          int64             `json:"item_id"`
	Name        string            `json:"name"`
	Category    InventoryCategory `json:"category"`
	Description string            `json:"description,omitempty"`
}

// Mission is a reusable mission definition. When TargetMax is set, the
// actual target is drawn once at start between TargetMin and TargetMax.
type Mission struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Difficulty  string       `json:"difficulty"`
	TargetMin   int          `json:"target_min"`
	TargetMax   *int         `json:"target_max,omitempty"`
	CoinReward  int64        `json:"coin_reward"`
	LevelReward int          `json:"level_reward"`
	ItemRewards []RewardItem `json:"item_rewards"`
	Active      bool         `json:"active"`
}

// ActiveMission is a trainer's in-progress mission. Progress is a bounded
// counter capped at Target.
type ActiveMission struct {
	ID        int64     `json:"id"`
	TrainerID int64     `json:"trainer_id"`
	MissionID int64     `json:"mission_id"`
	Progress  int       `json:"progress"`
	Target    int       `json:"target"`
	MonIDs    []int64   `json:"mon_ids"`
	StartedAt time.Time `json:"started_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Task is a one-shot completable chore bound to a trainer and optionally
// to a specific monster that levels up on completion.
type Task struct {
	ID          int64      `json:"id"`
	TrainerID   int64      `json:"trainer_id"`
	Name        string     `json:"name"`
	CoinReward  int64      `json:"coin_reward"`
	LevelReward int        `json:"level_reward"`
	MonsterID   *int64     `json:"monster_id,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Habit is a repeating chore with a streak. Daily habits keep their
// streak only on consecutive calendar days; weekly habits within a
// trailing seven-day window.
type Habit struct {
	ID              int64          `json:"id"`
	TrainerID       int64          `json:"trainer_id"`
	Name            string         `json:"name"`
	Frequency       HabitFrequency `json:"frequency"`
	Streak          int            `json:"streak"`
	LastCompletedAt *time.Time     `json:"last_completed_at,omitempty"`
	CoinReward      int64          `json:"coin_reward"`
	LevelReward     int            `json:"level_reward"`
	MonsterID       *int64         `json:"monster_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// HabitCompletion records one habit completion with the streak at that time.
type HabitCompletion struct {
	ID          int64     `json:"id"`
	HabitID     int64     `json:"habit_id"`
	Streak      int       `json:"streak"`
	CompletedAt time.Time `json:"completed_at"`
}
