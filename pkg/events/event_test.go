package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEvent struct {
	BaseEvent
	Amount string `json:"amount"`
}

func TestNewBaseEvent(t *testing.T) {
	before := time.Now().UTC()
	e := NewBaseEvent("lending.loan.closed", "loan-001", "LoanAccount", "tenant-001")
	after := time.Now().UTC()

	assert.NotEmpty(t, e.EventID())
	assert.Equal(t, "lending.loan.closed", e.EventType())
	assert.Equal(t, "loan-001", e.AggregateID())
	assert.Equal(t, "LoanAccount", e.AggregateType())
	assert.Equal(t, "tenant-001", e.TenantID())
	assert.False(t, e.OccurredAt().Before(before))
	assert.False(t, e.OccurredAt().After(after))
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	a := NewBaseEvent("x", "agg", "T", "tenant")
	b := NewBaseEvent("x", "agg", "T", "tenant")
	assert.NotEqual(t, a.EventID(), b.EventID())
}

func TestBaseEvent_EmbeddedPayloadMarshals(t *testing.T) {
	e := testEvent{
		BaseEvent: NewBaseEvent("lending.repayment.allocated", "loan-9", "LoanAccount", "tenant-2"),
		Amount:    "888.49",
	}

	payload, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, "888.49", decoded["amount"])
	assert.Equal(t, "lending.repayment.allocated", decoded["event_type"])
	assert.Equal(t, "loan-9", decoded["aggregate_id"])
}
