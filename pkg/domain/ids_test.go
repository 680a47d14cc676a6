package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "dermis/pkg/domain-errors"
)

// TestParseUserID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUserID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects attack-shaped input", func(t *testing.T) {
		for _, input := range []string{
			"'; DROP TABLE profiles;--",
			"../../../etc/passwd",
			strings.Repeat("a", 1000),
		} {
			_, err := ParseUserID(input)
			require.Error(t, err, "input %q", input)
		}
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUserID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(validUUID), id)
	})
}

func TestUserID_JSONForm(t *testing.T) {
	t.Run("marshals as the canonical UUID string", func(t *testing.T) {
		u := uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2")
		data, err := json.Marshal(UserID(u))
		require.NoError(t, err)
		assert.Equal(t, `"7d444840-9dc0-11d1-b245-5ffdce74fad2"`, string(data))
	})

	t.Run("round-trips through a struct field", func(t *testing.T) {
		type body struct {
			UserID UserID `json:"user_id"`
		}
		in := body{UserID: UserID(uuid.New())}
		data, err := json.Marshal(in)
		require.NoError(t, err)

		var out body
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, in.UserID, out.UserID)
	})

	t.Run("rejects a malformed string", func(t *testing.T) {
		var id UserID
		err := json.Unmarshal([]byte(`"not-a-uuid"`), &id)
		require.Error(t, err)
	})
}

func TestParseProfileVersion(t *testing.T) {
	t.Run("rejects zero and negative", func(t *testing.T) {
		for _, v := range []int{0, -1, -100} {
			_, err := ParseProfileVersion(v)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("accepts positive and increments", func(t *testing.T) {
		v, err := ParseProfileVersion(3)
		require.NoError(t, err)
		assert.Equal(t, ProfileVersion(4), v.Next())
	})

	t.Run("next from zero starts at one", func(t *testing.T) {
		assert.Equal(t, ProfileVersion(1), ProfileVersion(0).Next())
	})
}

func TestParsePregnancyStatus(t *testing.T) {
	t.Run("empty defaults to none", func(t *testing.T) {
		p, err := ParsePregnancyStatus("")
		require.NoError(t, err)
		assert.Equal(t, PregnancyNone, p)
	})

	t.Run("rejects unknown value", func(t *testing.T) {
		_, err := ParsePregnancyStatus("maybe")
		require.Error(t, err)
	})

	t.Run("safety review statuses", func(t *testing.T) {
		assert.True(t, PregnancyPregnant.RequiresSafetyReview())
		assert.True(t, PregnancyBreastfeeding.RequiresSafetyReview())
		assert.False(t, PregnancyNone.RequiresSafetyReview())
		assert.False(t, PregnancyPlanning.RequiresSafetyReview())
	})
}
