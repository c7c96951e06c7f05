package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlannerErrorFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      *PlannerError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewError(NO_APPLICABLE_METHOD, "no method for task deliver"),
			expected: "[NO_APPLICABLE_METHOD] no method for task deliver",
		},
		{
			name:     "with cause",
			err:      WrapError(STN_INCONSISTENT, "constraint rejected", errors.New("negative cycle")),
			expected: "[STN_INCONSISTENT] constraint rejected: negative cycle",
		},
		{
			name:     "formatted message",
			err:      NewErrorf(UNKNOWN_ACTION, "action %q not registered", "teleport"),
			expected: `[UNKNOWN_ACTION] action "teleport" not registered`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestPlannerErrorIs(t *testing.T) {
	err := NewError(ACTION_EXECUTION_FAILED, "command failed")

	assert.True(t, errors.Is(err, NewError(ACTION_EXECUTION_FAILED, "different message")))
	assert.False(t, errors.Is(err, NewError(NO_APPLICABLE_METHOD, "command failed")))
}

func TestPlannerErrorUnwrap(t *testing.T) {
	cause := errors.New("disk on fire")
	err := WrapError(ACTION_EXECUTION_FAILED, "command failed", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
	assert.True(t, errors.Is(err, cause))
}

func TestPlannerErrorUnwrapThroughFmt(t *testing.T) {
	inner := NewError(NO_VIABLE_BACKTRACK_POINT, "search exhausted")
	wrapped := fmt.Errorf("run failed: %w", inner)

	assert.True(t, IsCode(wrapped, NO_VIABLE_BACKTRACK_POINT))
	assert.False(t, IsCode(wrapped, STN_INCONSISTENT))
}

func TestWithContext(t *testing.T) {
	err := NewError(NO_VIABLE_BACKTRACK_POINT, "search exhausted").
		WithContext("failed_node", "node-42").
		WithContext("blacklisted", []string{"move(dock,void)"})

	require.NotNil(t, err.Context)
	assert.Equal(t, "node-42", err.Context["failed_node"])
	assert.Len(t, err.Context["blacklisted"], 1)
}
