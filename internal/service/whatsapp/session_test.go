package whatsapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManager(t *testing.T) {
	sm := NewSessionManager()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	sm.Touch("a", "Alpha", base)
	sm.Touch("b", "", base.Add(2*time.Hour))
	s := sm.Touch("a", "", base.Add(time.Hour))

	assert.Equal(t, 2, s.Commands)
	assert.Equal(t, "Alpha", s.Name, "an empty name keeps the known one")

	active := sm.ActiveSince(base.Add(30 * time.Minute))
	require.Len(t, active, 2)
	assert.Equal(t, "b", active[0].Sender)
	assert.Equal(t, "a", active[1].Sender)

	sm.ClearSession("a")
	_, ok := sm.GetSession("a")
	assert.False(t, ok)
}
