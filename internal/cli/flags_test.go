package cli

import (
	"regexp"
	"testing"

	"github.com/alexanderramin/vitals/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestWindowFlag(t *testing.T) {
	cases := map[string]int{"14": 14, "14d": 14, "2w": 14, "1m": 30, " 3D ": 3}
	for in, want := range cases {
		var w windowFlag
		require.NoError(t, w.Set(in), in)
		assert.Equal(t, want, int(w), in)
	}
	for _, in := range []string{"", "0d", "-1w", "w", "two weeks"} {
		var w windowFlag
		assert.Error(t, w.Set(in), in)
	}
}

func TestDateFlag(t *testing.T) {
	var d dateFlag
	assert.Equal(t, "", d.String())
	require.NoError(t, d.Set("2024-02-29"))
	assert.True(t, d.set)
	assert.Equal(t, "2024-02-29", d.String())
	assert.Error(t, d.Set("2023-02-29"))
	assert.Equal(t, "date", d.Type())
}

func TestTableFlag(t *testing.T) {
	tf := tableFlag(domain.TableSleep)
	require.NoError(t, tf.Set("Activity"))
	assert.Equal(t, domain.TableActivity, domain.Table(tf))
	assert.Equal(t, "activity", tf.String())
	assert.Error(t, tf.Set("sqlite_master"))
}
