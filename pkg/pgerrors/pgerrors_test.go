package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: CodeUniqueViolation, Constraint: "bookings_confirmed_slot_uniq"})

	constraint, ok := UniqueViolation(err)
	assert.True(t, ok)
	assert.Equal(t, "bookings_confirmed_slot_uniq", constraint)

	_, ok = UniqueViolation(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pq.Error{Code: CodeSerializationFailure}))
	assert.True(t, IsSerializationFailure(fmt.Errorf("commit: %w", &pq.Error{Code: CodeDeadlockDetected})))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: CodeUniqueViolation}))
	assert.False(t, IsSerializationFailure(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("insert: %w", &pq.Error{Code: CodeForeignKeyViolation})))
	assert.False(t, IsForeignKeyViolation(&pq.Error{Code: CodeUniqueViolation}))
	assert.False(t, IsForeignKeyViolation(errors.New("plain")))
}
