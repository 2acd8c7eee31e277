package domain

// DefaultRewardMonsterLevel is the level for monsters created from boss
// reward claims, both static and rolled.
const DefaultRewardMonsterLevel = 5

// DefaultBoxNumber is the storage box newly created monsters land in.
const DefaultBoxNumber = 1

// DefaultTrainerLevel is the starting level for a new trainer.
const DefaultTrainerLevel = 1

// DefaultTrainerCurrency is the starting currency for a new trainer.
const DefaultTrainerCurrency = 500

// PlaceholderSpecies and PlaceholderType are used when a random monster
// roll cannot be resolved; the claim degrades to a generic monster
// instead of failing.
const (
	PlaceholderSpecies = "Unknown"
	PlaceholderType    = "Normal"
)

// DefaultMonsterAttribute is used when no attribute is specified.
const DefaultMonsterAttribute = "Data"
