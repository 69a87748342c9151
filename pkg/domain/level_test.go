package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "payscope/pkg/domain-errors"
)

func TestParseLevel(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseLevel("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		_, err := ParseLevel("Principal")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts the closed enumeration", func(t *testing.T) {
		for _, s := range []string{"Entry", "Mid", "Senior"} {
			l, err := ParseLevel(s)
			require.NoError(t, err)
			assert.Equal(t, s, l.String())
		}
	})
}

func TestClassifyTitle(t *testing.T) {
	cases := map[string]Level{
		"Senior Software Engineer": LevelSenior,
		"Lead Engineer":            LevelSenior,
		"Staff Engineer":           LevelSenior,
		"Junior Developer":         LevelEntry,
		"Graduate Trainee":         LevelEntry,
		"Software Engineer":        LevelMid,
		"DevOps Engineer":          LevelMid,
	}
	for title, want := range cases {
		assert.Equal(t, want, ClassifyTitle(title), "title %q", title)
	}
}

func TestParseIDs(t *testing.T) {
	t.Run("rejects empty, non-numeric and non-positive", func(t *testing.T) {
		for _, s := range []string{"", "abc", "0", "-3"} {
			_, err := ParseRecordID(s)
			require.Error(t, err, "input %q", s)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		}
	})

	t.Run("accepts positive integers", func(t *testing.T) {
		id, err := ParseCompanyID("42")
		require.NoError(t, err)
		assert.Equal(t, CompanyID(42), id)
	})
}
