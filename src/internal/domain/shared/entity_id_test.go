package shared_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackyeh168/momentum/src/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userMarker struct{}
type taskMarker struct{}

type testUserID = shared.EntityID[userMarker]

// contextualError 模擬各領域包的 DomainError
type contextualError struct {
	message string
	context map[string]interface{}
}

func (e *contextualError) Error() string { return e.message }

func (e *contextualError) WithContext(keyValues ...interface{}) error {
	ctx := make(map[string]interface{})
	for i := 0; i+1 < len(keyValues); i += 2 {
		ctx[keyValues[i].(string)] = keyValues[i+1]
	}
	return &contextualError{message: e.message, context: ctx}
}

var errInvalidUser = &contextualError{message: "invalid user id"}

func TestNewEntityID_GeneratesUniqueNonEmptyIDs(t *testing.T) {
	// Act
	id1 := shared.NewEntityID[userMarker]()
	id2 := shared.NewEntityID[userMarker]()

	// Assert
	assert.False(t, id1.IsEmpty())
	assert.False(t, id1.Equals(id2))
}

func TestEntityIDFromString_NormalizesToLowercase(t *testing.T) {
	// Act
	id, err := shared.EntityIDFromString[userMarker]("550E8400-E29B-41D4-A716-446655440000", errInvalidUser)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", id.String())
}

func TestEntityIDFromString_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"空字串", ""},
		{"不是 UUID", "not-a-uuid"},
		{"部分 UUID", "550e8400-e29b"},
		{"Nil UUID", "00000000-0000-0000-0000-000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			id, err := shared.EntityIDFromString[userMarker](tt.value, errInvalidUser)

			// Assert
			require.Error(t, err)
			assert.True(t, id.IsEmpty())

			var ce *contextualError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.value, ce.context["input"])
			assert.NotEmpty(t, ce.context["parse_error"])
		})
	}
}

func TestEntityIDFromString_PlainErrorTemplateReturnedAsIs(t *testing.T) {
	// Arrange
	plain := fmt.Errorf("plain")

	// Act
	_, err := shared.EntityIDFromString[taskMarker]("bad", plain)

	// Assert
	assert.Same(t, plain, err)
}

func TestEntityID_EqualsComparesValue(t *testing.T) {
	// Arrange
	raw := "550e8400-e29b-41d4-a716-446655440000"
	a, _ := shared.EntityIDFromString[userMarker](raw, errInvalidUser)
	b, _ := shared.EntityIDFromString[userMarker](raw, errInvalidUser)

	// Assert
	assert.True(t, a.Equals(b))
	assert.Equal(t, a, b, "相同 UUID 的 ID 可作為 map key 比較")
	assert.True(t, testUserID{}.IsEmpty())
}
