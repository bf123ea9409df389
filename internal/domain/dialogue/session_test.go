package dialogue

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetEmployeeOnlyBindsOnce(t *testing.T) {
	session := NewSession("chat_1", "", "en", time.Now())

	assert.True(t, session.SetEmployee("emp-1"))
	assert.False(t, session.SetEmployee("emp-2"))
	assert.Equal(t, "emp-1", session.EmployeeID)

	assert.False(t, session.SetEmployee(""))
}

func TestAddPromptDeduplicatesByID(t *testing.T) {
	session := NewSession("chat_1", "emp-1", "en", time.Now())

	assert.True(t, session.AddPrompt(ProactivePrompt{ID: "p1", Title: "First"}))
	assert.False(t, session.AddPrompt(ProactivePrompt{ID: "p1", Title: "Duplicate"}))

	require.Len(t, session.Prompts, 1)
	assert.Equal(t, "First", session.Prompts[0].Title)
}

func TestAddPromptEvictsOldestAtCap(t *testing.T) {
	session := NewSession("chat_1", "emp-1", "en", time.Now())

	for i := 0; i < MaxPrompts; i++ {
		assert.True(t, session.AddPrompt(ProactivePrompt{ID: fmt.Sprintf("p%d", i)}))
	}
	require.Len(t, session.Prompts, MaxPrompts)

	assert.True(t, session.AddPrompt(ProactivePrompt{ID: "newest"}))

	require.Len(t, session.Prompts, MaxPrompts)
	assert.Equal(t, "p1", session.Prompts[0].ID)
	assert.Equal(t, "newest", session.Prompts[MaxPrompts-1].ID)
}

func TestRemovePrompt(t *testing.T) {
	session := NewSession("chat_1", "emp-1", "en", time.Now())
	session.AddPrompt(ProactivePrompt{ID: "p1"})
	session.AddPrompt(ProactivePrompt{ID: "p2"})

	removed, found := session.RemovePrompt("p1")
	assert.True(t, found)
	assert.Equal(t, "p1", removed.ID)
	require.Len(t, session.Prompts, 1)

	_, found = session.RemovePrompt("missing")
	assert.False(t, found)
}

func TestPendingRoundTrip(t *testing.T) {
	amount := 250.5
	date := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	original := &eventIntent{Kind: "bonus", Amount: &amount, Date: &date, AwaitingConfirm: false}

	raw, err := EncodePending(original)
	require.NoError(t, err)

	restored, err := DecodePending(raw)
	require.NoError(t, err)

	decoded, ok := restored.(*eventIntent)
	require.True(t, ok)
	assert.Equal(t, IntentAddBonus, decoded.Tag())
	require.NotNil(t, decoded.Amount)
	assert.Equal(t, amount, *decoded.Amount)
	require.NotNil(t, decoded.Date)
	assert.True(t, date.Equal(*decoded.Date))
	assert.Nil(t, decoded.Reason)
}

func TestEncodePendingNil(t *testing.T) {
	raw, err := EncodePending(nil)
	require.NoError(t, err)
	assert.Nil(t, raw)

	restored, err := DecodePending(nil)
	require.NoError(t, err)
	assert.Nil(t, restored)
}

func TestDecodePendingUnknownTag(t *testing.T) {
	_, err := DecodePending([]byte(`{"tag":"mysteryIntent","data":{}}`))
	assert.Error(t, err)
}

func TestParseIntentFamilies(t *testing.T) {
	tag, err := ParseIntent("requestVacation")
	require.NoError(t, err)
	assert.True(t, tag.ServerConfirmed())
	assert.False(t, tag.ReadOnly())

	tag, err = ParseIntent("monthlySummary")
	require.NoError(t, err)
	assert.True(t, tag.ReadOnly())
	assert.False(t, tag.ServerConfirmed())

	tag, err = ParseIntent("createLoan")
	require.NoError(t, err)
	assert.False(t, tag.ReadOnly())
	assert.False(t, tag.ServerConfirmed())

	_, err = ParseIntent("doEverything")
	assert.Error(t, err)
}
