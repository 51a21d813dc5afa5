package siamcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestHandlerRejectsInvalidInput(t *testing.T) {
	s := New(nil, nil)
	defer s.Close()

	called := false
	h := handler(s, "search-courses", func(ctx context.Context, in searchCoursesInput) (any, error) {
		called = true
		return nil, nil
	})

	result, _, err := h(context.Background(), nil, searchCoursesInput{Query: "x"})
	require.NoError(t, err, "validation failures are payloads, not protocol errors")
	assert.True(t, result.IsError)
	assert.False(t, called, "the operation must not run on invalid input")

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &payload))
	assert.Contains(t, payload["error"], "invalid input")
}

func TestHandlerRejectsBadEnumValue(t *testing.T) {
	s := New(nil, nil)
	defer s.Close()

	h := handler(s, "search-courses", func(ctx context.Context, in searchCoursesInput) (any, error) {
		return nil, nil
	})

	result, _, err := h(context.Background(), nil, searchCoursesInput{Query: "calculo", Level: "doctorado"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandlerRendersOperationResult(t *testing.T) {
	s := New(nil, nil)
	defer s.Close()

	h := handler(s, "get-course-groups", func(ctx context.Context, in courseCodeInput) (any, error) {
		return map[string]any{"courseCode": in.CourseCode, "groups": 2}, nil
	})

	result, _, err := h(context.Background(), nil, courseCodeInput{CourseCode: "3007747"})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &payload))
	assert.Equal(t, "3007747", payload["courseCode"])
}

func TestHandlerWrapsOperationErrors(t *testing.T) {
	s := New(nil, nil)
	defer s.Close()

	h := handler(s, "get-grades", func(ctx context.Context, in gradesInput) (any, error) {
		return nil, errors.New("no active session: authenticate first")
	})

	result, _, err := h(context.Background(), nil, gradesInput{})
	require.NoError(t, err, "operation failures must not become protocol errors")
	assert.True(t, result.IsError)
	assert.Contains(t, textOf(t, result), "no active session")
}

func TestCourseCodeValidationRequiresDigits(t *testing.T) {
	s := New(nil, nil)
	defer s.Close()

	h := handler(s, "check-seat-availability", func(ctx context.Context, in courseCodeInput) (any, error) {
		return nil, nil
	})

	result, _, err := h(context.Background(), nil, courseCodeInput{CourseCode: "abc"})
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, _, err = h(context.Background(), nil, courseCodeInput{CourseCode: "3007747"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
}
