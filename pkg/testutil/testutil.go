// Package testutil provides shared helpers for unit and integration tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Fixed UUIDs for deterministic testing.
var (
	TestStudentID1 = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestStudentID2 = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestClassID    = uuid.MustParse("00000000-0000-0000-0000-000000000010")
	TestSessionID  = uuid.MustParse("00000000-0000-0000-0000-000000000020")
)

// RequireNoError fails the test immediately if err is not nil.
func RequireNoError(t *testing.T, err error, msgAndArgs ...interface{}) {
	t.Helper()
	require.NoError(t, err, msgAndArgs...)
}

// AssertErrorContains checks that err contains the expected substring.
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), expected)
}
