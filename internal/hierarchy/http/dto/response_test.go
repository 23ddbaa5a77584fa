package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hierarchyDomain "github.com/allisson/credvault/internal/hierarchy/domain"
	"github.com/allisson/credvault/internal/hierarchy/http/dto"
)

func TestMapDivisionsToResponse(t *testing.T) {
	division := &hierarchyDomain.Division{ID: uuid.New(), OUID: uuid.New(), Name: "Backend"}

	body, err := json.Marshal(dto.MapDivisionsToResponse([]*hierarchyDomain.Division{division}))
	require.NoError(t, err)

	assert.JSONEq(t,
		`[{"_id":"`+division.ID.String()+`","name":"Backend","ou":"`+division.OUID.String()+`"}]`,
		string(body),
	)
}

func TestMapOUsToPublicResponse(t *testing.T) {
	ou := &hierarchyDomain.OU{ID: uuid.New(), Name: "Engineering", Description: "hidden"}

	body, err := json.Marshal(dto.MapOUsToPublicResponse([]*hierarchyDomain.OU{ou}))
	require.NoError(t, err)

	assert.JSONEq(t, `[{"_id":"`+ou.ID.String()+`","name":"Engineering"}]`, string(body))
}

func TestMapOUsToResponse_Empty(t *testing.T) {
	body, err := json.Marshal(dto.MapOUsToResponse(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}
