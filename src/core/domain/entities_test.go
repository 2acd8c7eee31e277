package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeValidate(t *testing.T) {
	valid := Trade{
		InitiatorID: 1,
		RecipientID: 2,
		OfferedMons: []int64{10},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name  string
		trade Trade
		field string
	}{
		{
			name:  "missing initiator",
			trade: Trade{RecipientID: 2, OfferedMons: []int64{10}},
			field: "initiator_id",
		},
		{
			name:  "missing recipient",
			trade: Trade{InitiatorID: 1, OfferedMons: []int64{10}},
			field: "recipient_id",
		},
		{
			name:  "self trade",
			trade: Trade{InitiatorID: 1, RecipientID: 1, OfferedMons: []int64{10}},
			field: "recipient_id",
		},
		{
			name:  "empty trade",
			trade: Trade{InitiatorID: 1, RecipientID: 2},
			field: "trade",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.trade.Validate()
			require.Error(t, err)
			assert.True(t, IsValidationError(err))

			var derr *DomainError
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, tc.field, derr.Field)
		})
	}
}

func TestTradeValidateItemsOnly(t *testing.T) {
	trade := Trade{
		InitiatorID: 1,
		RecipientID: 2,
		OfferedItems: ItemBundle{
			CategoryBerries: {"Oran Berry": 3},
		},
	}
	assert.NoError(t, trade.Validate())
}

func TestTradeNormalize(t *testing.T) {
	var trade Trade
	trade.Normalize()

	assert.NotNil(t, trade.OfferedMons)
	assert.NotNil(t, trade.RequestedMons)
	assert.NotNil(t, trade.OfferedItems)
	assert.NotNil(t, trade.RequestedItems)

	// Existing collections are left alone.
	trade.OfferedMons = []int64{7}
	trade.Normalize()
	assert.Equal(t, []int64{7}, trade.OfferedMons)
}

func TestItemBundleEmpty(t *testing.T) {
	assert.True(t, ItemBundle(nil).Empty())
	assert.True(t, ItemBundle{}.Empty())
	assert.True(t, ItemBundle{CategoryItems: {}}.Empty())
	assert.True(t, ItemBundle{CategoryItems: {"Potion": 0}}.Empty())
	assert.False(t, ItemBundle{CategoryItems: {"Potion": 1}}.Empty())
}

func TestValidCategory(t *testing.T) {
	for _, c := range []InventoryCategory{
		CategoryItems, CategoryBalls, CategoryBerries, CategoryPastries,
		CategoryEvolution, CategoryEggs, CategoryAntiques, CategoryHeldItems, CategorySeals,
	} {
		assert.True(t, ValidCategory(c), string(c))
	}
	assert.False(t, ValidCategory("weapons"))
	assert.False(t, ValidCategory(""))
}
