package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorShape(t *testing.T) {
	raw, err := json.Marshal(Error("customer not found"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"customer not found"}`, string(raw))
}

func TestDuplicateShape(t *testing.T) {
	raw, err := json.Marshal(Duplicate("possible duplicate found", map[string]string{"id": "42"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"possible duplicate found","duplicate":{"id":"42"},"code":"DUPLICATE_FOUND"}`, string(raw))
}

func TestMessageShape(t *testing.T) {
	raw, err := json.Marshal(Message("Customer deleted", "42"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"Customer deleted","id":"42"}`, string(raw))
}
