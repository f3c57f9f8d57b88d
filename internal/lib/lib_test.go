package lib

import (
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSet(t *testing.T) {
	s := NewSet()
	assert.Equal(t, 0, s.Size())

	s.Add("410")
	s.Add("410")
	s.Add("428.0")

	assert.Equal(t, 2, s.Size())
	assert.True(t, s.Contains("410"))
	assert.False(t, s.Contains("412"))
	assert.ElementsMatch(t, []string{"410", "428.0"}, s.AsSlice())
}

func TestQueue(t *testing.T) {
	q := NewQueue()
	assert.Equal(t, "", q.Dequeue())

	q.Enqueue("a")
	q.Enqueue("b")
	assert.Equal(t, 2, q.Size())

	assert.Equal(t, "a", q.Dequeue())
	assert.Equal(t, "b", q.Dequeue())
	assert.Equal(t, "", q.Dequeue())
}

func TestStrHasher(t *testing.T) {
	h := NewStrHasher()

	first := h.Hash("410.71")
	second := h.Hash("entity_diseases_MI")

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, first, h.Hash("410.71"), "same string, same id")
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	var holder struct {
		Cooldown Duration `json:"cooldown"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"cooldown": "1m30s"}`), &holder))
	assert.Equal(t, 90*time.Second, holder.Cooldown.Duration)

	require.NoError(t, json.Unmarshal([]byte(`{"cooldown": 5000000000}`), &holder))
	assert.Equal(t, 5*time.Second, holder.Cooldown.Duration)

	assert.Error(t, json.Unmarshal([]byte(`{"cooldown": true}`), &holder))
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	var holder struct {
		Timeout Duration `yaml:"timeout"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("timeout: 45s"), &holder))
	assert.Equal(t, 45*time.Second, holder.Timeout.Duration)
}

func TestParseSLogLevel(t *testing.T) {
	level, err := ParseSLogLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	level, err = ParseSLogLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseSLogLevel("noisy")
	assert.Error(t, err)
}
