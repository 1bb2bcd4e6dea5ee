package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogPreservesAppendOrder(t *testing.T) {
	log := NewLog()
	log.Message("first", "white")
	log.Damage("target-1", 5, "physical")
	log.Dead("target-1")

	records := log.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "first", records[0].Msg.Text)
	assert.True(t, records[1].HasDamage)
	assert.Equal(t, 5, records[1].Amount)
	assert.True(t, records[2].HasDead)
	assert.Equal(t, "target-1", records[2].DeadID)
}

func TestLogRecordsReturnsACopyOfTheSlice(t *testing.T) {
	log := NewLog()
	log.Message("one", "white")

	records := log.Records()
	records = append(records, Record{Msg: &Message{Text: "appended locally"}})

	fresh := log.Records()
	assert.Len(t, fresh, 1, "appending to a returned slice must not grow the log's own backing slice")
}

func TestTeleportedAndConsumedFlags(t *testing.T) {
	log := NewLog()
	log.Teleported(true)
	log.Consumed(false)

	records := log.Records()
	require.Len(t, records, 2)
	assert.True(t, records[0].HasTeleported)
	assert.True(t, records[0].Teleported)
	assert.True(t, records[1].HasConsumed)
	assert.False(t, records[1].Consumed)
}
