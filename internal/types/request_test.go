package types

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRequest_Decode(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		budget    Budget
		interests StringList
	}{
		{"numeric budget", `{"budget":5000}`, "5000", nil},
		{"string budget", `{"budget":" 3000 "}`, "3000", nil},
		{"zero budget", `{"budget":0}`, "", nil},
		{"interest list", `{"budget":1,"interests":["temples","food"]}`, "1", StringList{"temples", "food"}},
		{"interest string", `{"budget":1,"interests":"cafes, hiking,"}`, "1", StringList{"cafes", "hiking"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req PlanRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.budget, req.Budget)
			assert.Equal(t, tt.interests, req.Interests)
		})
	}
}

func TestPlanRequest_DecodeInvalidBudget(t *testing.T) {
	var req PlanRequest
	err := json.Unmarshal([]byte(`{"budget":true}`), &req)
	assert.Error(t, err)
}

func TestOption(t *testing.T) {
	none := None[Place]()
	_, ok := none.Get()
	assert.False(t, ok)
	assert.Equal(t, "fallback", None[string]().OrElse("fallback"))

	some := Some(Place{PlaceID: "abc"})
	p, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, "abc", p.PlaceID)
}
