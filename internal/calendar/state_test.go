package calendar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateSelectsFirstStaff(t *testing.T) {
	s := NewState(testSchedule())
	assert.Equal(t, "staff-tuba", s.SelectedStaffID)

	empty := NewState(nil)
	assert.Equal(t, "", empty.SelectedStaffID)
}

func TestSelectStaffClearsMultiSelect(t *testing.T) {
	s := NewState(testSchedule())
	s.ToggleMultiSelect()
	s.ClickEvent("a1")
	require.Equal(t, []string{"a1"}, s.SelectedEventIDs)

	s.SelectStaff("staff-ayse")
	assert.Equal(t, "staff-ayse", s.SelectedStaffID)
	assert.False(t, s.MultiSelect)
	assert.Empty(t, s.SelectedEventIDs)
}

func TestEnsureSelectionFallsBack(t *testing.T) {
	s := NewState(testSchedule())
	s.SelectedStaffID = "staff-unknown"
	s.EnsureSelection()
	assert.Equal(t, "staff-tuba", s.SelectedStaffID)
}

func TestCombinedStaffsOrderAndHiding(t *testing.T) {
	s := NewState(testSchedule())
	require.True(t, s.AddCustomStaff("Zeynep"))

	combined := s.CombinedStaffs()
	require.Len(t, combined, 4)
	// 排班表员工在前，本地员工在后
	assert.Equal(t, "staff-tuba", combined[0].ID)
	assert.Equal(t, "Zeynep", combined[3].Name)

	s.HiddenStaffIDs = append(s.HiddenStaffIDs, "staff-ayse")
	combined = s.CombinedStaffs()
	require.Len(t, combined, 3)
	for _, staff := range combined {
		assert.NotEqual(t, "staff-ayse", staff.ID)
	}
}

func TestAssignmentByIDPrefersLocal(t *testing.T) {
	s := NewState(testSchedule())
	require.True(t, s.CreateCustomAssignment("staff-tuba", "2025-10-10", "09:00", "12:00", "Ek Mesai"))

	local, ok := s.AssignmentByID(s.CustomAssignments[0].ID)
	require.True(t, ok)
	assert.Equal(t, "Ek Mesai", local.ShiftName)

	remote, ok := s.AssignmentByID("a1")
	require.True(t, ok)
	assert.Equal(t, "shift-morning", remote.ShiftID)

	_, ok = s.AssignmentByID("missing")
	assert.False(t, ok)
}

func TestStateSurvivesJSONRoundTrip(t *testing.T) {
	s := NewState(testSchedule())
	require.True(t, s.CreateCustomAssignment("staff-tuba", "2025-10-10", "", "", ""))
	s.ClickEvent("a1")

	payload, err := json.Marshal(s)
	require.NoError(t, err)
	// 排班表快照不随会话落盘
	assert.NotContains(t, string(payload), "Ekim 2025")

	restored := &State{}
	require.NoError(t, json.Unmarshal(payload, restored))
	restored.Schedule = testSchedule()

	assert.Equal(t, s.SelectedStaffID, restored.SelectedStaffID)
	require.Len(t, restored.CustomAssignments, 1)
	assert.Equal(t, DefaultCustomTitle, restored.CustomAssignments[0].ShiftName)
	require.NotNil(t, restored.DraftRequest)
	assert.Equal(t, "a1", restored.DraftRequest.AssignmentID)
}
