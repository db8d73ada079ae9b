package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskUpdateRequestDistinguishesAbsentFields(t *testing.T) {
	var req TaskUpdateRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"x","duration_hours":0}`), &req))

	require.NotNil(t, req.Title)
	assert.Equal(t, "x", *req.Title)
	require.NotNil(t, req.DurationHours)
	assert.Zero(t, *req.DurationHours)
	assert.Nil(t, req.Completed, "absent field stays nil")
	assert.Nil(t, req.Notes)
}

func TestRawDueDateNull(t *testing.T) {
	assert.True(t, RawDueDateNull([]byte(`{"due_date":null}`)))
	assert.False(t, RawDueDateNull([]byte(`{"due_date":"2026-03-01"}`)))
	assert.False(t, RawDueDateNull([]byte(`{"title":"x"}`)))
	assert.False(t, RawDueDateNull([]byte(`not json`)))
}
