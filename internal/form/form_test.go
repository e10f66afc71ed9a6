// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package form

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/squarer/letter-generator/pkg/types"
)

// newTestState returns a State with sequential IDs.
func newTestState() *State {
	s := New()
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func TestAddTrimsAndAssignsID(t *testing.T) {
	s := newTestState()
	p, err := s.Add(types.CategorySender, "  王小明 ", "\t台北市信義區 ")
	require.NoError(t, err)
	assert.Equal(t, types.Party{ID: "id-1", Name: "王小明", Address: "台北市信義區"}, p)
	assert.Equal(t, []types.Party{p}, s.Parties(types.CategorySender))
	assert.Empty(t, s.Parties(types.CategoryRecipient))
}

func TestAddRejectsIncompleteParty(t *testing.T) {
	tests := []struct {
		name, partyName, address string
	}{
		{"missing name", "", "台北市"},
		{"blank name", "   ", "台北市"},
		{"missing address", "王小明", ""},
		{"blank address", "王小明", " \t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState()
			_, err := s.Add(types.CategoryRecipient, tt.partyName, tt.address)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, []string{MsgPartyIncomplete}, ve.Messages)
			assert.Empty(t, s.Parties(types.CategoryRecipient))
		})
	}
}

func TestAddUnknownCategory(t *testing.T) {
	_, err := newTestState().Add(types.Category("bcc"), "a", "b")
	assert.Error(t, err)
}

func TestUpdate(t *testing.T) {
	s := newTestState()
	a, _ := s.Add(types.CategoryCC, "甲", "一路")
	b, _ := s.Add(types.CategoryCC, "乙", "二路")
	before := s.Parties(types.CategoryCC)

	require.NoError(t, s.Update(types.CategoryCC, b.ID, " 丙 ", "三路"))
	assert.Equal(t, []types.Party{a, {ID: b.ID, Name: "丙", Address: "三路"}}, s.Parties(types.CategoryCC))
	// Earlier snapshots are not modified.
	assert.Equal(t, "乙", before[1].Name)

	err := s.Update(types.CategoryCC, "missing", "x", "y")
	assert.ErrorIs(t, err, ErrPartyNotFound)

	var ve *ValidationError
	assert.ErrorAs(t, s.Update(types.CategoryCC, a.ID, "", "y"), &ve)
}

func TestRemove(t *testing.T) {
	s := newTestState()
	a, _ := s.Add(types.CategorySender, "甲", "一路")
	b, _ := s.Add(types.CategorySender, "乙", "二路")

	assert.True(t, s.Remove(types.CategorySender, a.ID))
	assert.Equal(t, []types.Party{b}, s.Parties(types.CategorySender))
	assert.False(t, s.Remove(types.CategorySender, a.ID))
	assert.False(t, s.Remove(types.Category("bcc"), b.ID))
}

func TestClearAll(t *testing.T) {
	s := newTestState()
	_, _ = s.Add(types.CategorySender, "甲", "一路")
	_, _ = s.Add(types.CategoryRecipient, "乙", "二路")
	s.SetContent("內文")

	s.ClearAll()
	data := s.LetterData()
	assert.Empty(t, data.Senders)
	assert.Empty(t, data.Recipients)
	assert.NotNil(t, data.CCRecipients)
	assert.Empty(t, data.CCRecipients)
	assert.Equal(t, "", s.Content())
}

func TestFromLetterAssignsMissingIDs(t *testing.T) {
	s := FromLetter(types.LetterData{
		Senders:    []types.Party{{ID: "keep", Name: "a", Address: "b"}},
		Recipients: []types.Party{{Name: "c", Address: "d"}},
		Content:    "x",
	})
	assert.Equal(t, "keep", s.Parties(types.CategorySender)[0].ID)
	assert.NotEmpty(t, s.Parties(types.CategoryRecipient)[0].ID)
	assert.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	complete := func() types.LetterData {
		return types.LetterData{
			Senders:    []types.Party{{Name: "A", Address: "X"}},
			Recipients: []types.Party{{Name: "B", Address: "Y"}},
			Content:    "hello",
		}
	}

	tests := []struct {
		name   string
		mutate func(d *types.LetterData)
		want   []string
	}{
		{
			name:   "complete letter",
			mutate: func(d *types.LetterData) {},
		},
		{
			name:   "no senders",
			mutate: func(d *types.LetterData) { d.Senders = nil },
			want:   []string{MsgPartiesRequired},
		},
		{
			name:   "empty recipients and blank content",
			mutate: func(d *types.LetterData) { d.Recipients = []types.Party{}; d.Content = " \n\t" },
			want:   []string{MsgPartiesRequired, MsgContentRequired},
		},
		{
			name:   "missing content",
			mutate: func(d *types.LetterData) { d.Content = "" },
			want:   []string{MsgContentRequired},
		},
		{
			name:   "incomplete cc party",
			mutate: func(d *types.LetterData) { d.CCRecipients = []types.Party{{Name: "C"}} },
			want:   []string{MsgPartyIncomplete},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := complete()
			tt.mutate(&d)
			err := Validate(d)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.want, ve.Messages)
		})
	}
}
