package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// DefaultBaseCoins is the coin pool used by the default reward scheme
// when no templates are assigned to a boss.
const DefaultBaseCoins = 1000

// TrophyShareThreshold is the minimum damage share that earns a trophy
// under the default scheme.
const TrophyShareThreshold = 0.1

// MinCoinShare floors template coin scaling: nobody receives less than
// this fraction of the summed template coins.
const MinCoinShare = 0.1

// Participant is one player's aggregated contribution to a boss, with
// the trainer the reward will be credited to. TrainerID zero means the
// player has no resolvable trainer and is skipped.
type Participant struct {
	PlayerID    string
	TrainerID   int64
	TotalDamage int64
	FirstHitAt  time.Time
}

// RankParticipants orders participants by descending total damage.
// Ties are broken by earliest first contribution, then by player ID so
// the ranking is fully deterministic.
func RankParticipants(participants []Participant) {
	sort.SliceStable(participants, func(i, j int) bool {
		a, b := participants[i], participants[j]
		if a.TotalDamage != b.TotalDamage {
			return a.TotalDamage > b.TotalDamage
		}
		if !a.FirstHitAt.Equal(b.FirstHitAt) {
			return a.FirstHitAt.Before(b.FirstHitAt)
		}
		return a.PlayerID < b.PlayerID
	})
}

// ScaleCoins scales a template coin pool by a damage share, with a
// floor of MinCoinShare of the unscaled pool.
func ScaleCoins(coins int64, share float64) int64 {
	scaled := math.Round(float64(coins) * share)
	floor := math.Round(float64(coins) * MinCoinShare)
	return int64(math.Max(scaled, floor))
}

// BuildRewards computes one unclaimed BossReward per eligible participant.
// Participants must be pre-ranked (RankParticipants); the first entry is
// the top damager. Participants without a trainer are skipped. When no
// templates are given the default scheme applies: coins proportional to
// damage share out of DefaultBaseCoins, a trophy at or above
// TrophyShareThreshold, and a flavor monster for everyone. With
// templates, the top damager receives top-damager templates plus regular
// ones; everyone else only regular ones, with coin scaling and trophy /
// monster fallbacks per template sums.
func BuildRewards(bossName string, participants []Participant, templates []RewardTemplate) []BossReward {
	var total int64
	for _, p := range participants {
		total += p.TotalDamage
	}

	var topTemplates, regularTemplates []RewardTemplate
	for _, t := range templates {
		if t.TopDamagerOnly {
			topTemplates = append(topTemplates, t)
		} else {
			regularTemplates = append(regularTemplates, t)
		}
	}

	var rewards []BossReward
	for i, p := range participants {
		if p.TrainerID == 0 {
			continue
		}

		var share float64
		if total > 0 {
			share = float64(p.TotalDamage) / float64(total)
		}
		isTop := i == 0

		var reward BossReward
		if len(templates) == 0 {
			reward = defaultReward(bossName, share, isTop)
		} else {
			applicable := regularTemplates
			if isTop && len(topTemplates) > 0 {
				applicable = append(append([]RewardTemplate{}, topTemplates...), regularTemplates...)
			}
			reward = templateReward(bossName, share, isTop, applicable)
		}
		reward.TrainerID = p.TrainerID
		rewards = append(rewards, reward)
	}
	return rewards
}

func defaultReward(bossName string, share float64, isTop bool) BossReward {
	reward := BossReward{
		Coins:    int64(math.Round(DefaultBaseCoins * share)),
		Items:    []RewardItem{},
		Monsters: []RewardMonster{FallbackMonster(bossName, isTop)},
	}
	if share >= TrophyShareThreshold {
		reward.Items = append(reward.Items, TrophyItem(bossName))
	}
	return reward
}

func templateReward(bossName string, share float64, isTop bool, templates []RewardTemplate) BossReward {
	var coins int64
	var levels int
	items := []RewardItem{}
	monsters := []RewardMonster{}
	for _, t := range templates {
		coins += t.Coins
		levels += t.Levels
		items = append(items, t.Items...)
		monsters = append(monsters, t.Monsters...)
	}

	if !hasTrophy(items) {
		items = append(items, TrophyItem(bossName))
	}
	if len(monsters) == 0 {
		monsters = append(monsters, FallbackMonster(bossName, isTop))
	}

	return BossReward{
		Coins:    ScaleCoins(coins, share),
		Levels:   levels,
		Items:    items,
		Monsters: monsters,
	}
}

func hasTrophy(items []RewardItem) bool {
	for _, item := range items {
		if strings.Contains(item.Name, "Trophy") {
			return true
		}
	}
	return false
}

// TrophyItem is the default trophy grant for defeating a boss.
func TrophyItem(bossName string) RewardItem {
	return RewardItem{
		Name:        "Boss Trophy",
		Quantity:    1,
		Description: fmt.Sprintf("Trophy for defeating %s", bossName),
		Category:    CategoryItems,
	}
}

// FallbackMonster is the flavor monster granted when a reward carries no
// monster entries: a special baby version of the boss for the top
// damager, a grunt for everyone else. Both are random rolls resolved at
// claim time.
func FallbackMonster(bossName string, isTop bool) RewardMonster {
	if isTop {
		return RewardMonster{
			Name:        fmt.Sprintf("Baby %s", bossName),
			Description: fmt.Sprintf("A baby version of %s", bossName),
			Special:     true,
		}
	}
	return RewardMonster{
		Name:        fmt.Sprintf("%s Grunt", bossName),
		Description: fmt.Sprintf("A grunt that served %s", bossName),
	}
}
