package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openwater/charterapi/types"
)

func TestDuplicateTourTitleBlockedPerOperator(t *testing.T) {
	db := openTestDB(t)
	fx := seedFixtures(t, db)

	dup := types.Tour{OperatorID: fx.op.ID, Title: fx.whales.Title,
		Price: decimal.NewFromFloat(10), DurationInMinutes: 60}
	assert.Error(t, db.Create(&dup).Error)

	// the same title under another operator is allowed
	rival := types.Operator{Name: "Rival Tours", Slug: "rival-tours", Email: "rival@example.com"}
	require.NoError(t, db.Create(&rival).Error)
	ok := types.Tour{OperatorID: rival.ID, Title: fx.whales.Title,
		Price: decimal.NewFromFloat(10), DurationInMinutes: 60}
	require.NoError(t, db.Create(&ok).Error)
}
