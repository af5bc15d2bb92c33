package model

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermission_GQL(t *testing.T) {
	var p Permission
	assert.NoError(t, p.UnmarshalGQL("ITEMCREATE"))
	assert.Equal(t, PermissionItemcreate, p)

	assert.EqualError(t, p.UnmarshalGQL("ROOT"), "ROOT is not a valid Permission")
	assert.EqualError(t, p.UnmarshalGQL(3), "enums must be strings")

	var buf bytes.Buffer
	PermissionAdmin.MarshalGQL(&buf)
	assert.Equal(t, `"ADMIN"`, buf.String())
}

func TestOrderByInputs_GQL(t *testing.T) {
	var ib ItemOrderByInput
	assert.NoError(t, ib.UnmarshalGQL("price_DESC"))
	assert.Equal(t, ItemOrderByInputPriceDesc, ib)
	assert.Error(t, ib.UnmarshalGQL("price_SIDEWAYS"))

	var oo OrderOrderByInput
	assert.NoError(t, oo.UnmarshalGQL("total_ASC"))
	assert.Equal(t, OrderOrderByInputTotalAsc, oo)
}
