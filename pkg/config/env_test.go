package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("FEEDSHELF_TEST_STRING", "")
	assert.Equal(t, "fallback", GetEnvString("FEEDSHELF_TEST_STRING", "fallback"))

	t.Setenv("FEEDSHELF_TEST_STRING", "value")
	assert.Equal(t, "value", GetEnvString("FEEDSHELF_TEST_STRING", "fallback"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "unset", value: "", want: 4},
		{name: "valid", value: "12", want: 12},
		{name: "invalid falls back", value: "twelve", want: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FEEDSHELF_TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("FEEDSHELF_TEST_INT", 4))
		})
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("FEEDSHELF_TEST_FLOAT", "2.5")
	assert.Equal(t, 2.5, GetEnvFloat("FEEDSHELF_TEST_FLOAT", 1))

	t.Setenv("FEEDSHELF_TEST_FLOAT", "fast")
	assert.Equal(t, 1.0, GetEnvFloat("FEEDSHELF_TEST_FLOAT", 1))
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("FEEDSHELF_TEST_DURATION", "45s")
	assert.Equal(t, 45*time.Second, GetEnvDuration("FEEDSHELF_TEST_DURATION", time.Second))

	t.Setenv("FEEDSHELF_TEST_DURATION", "soon")
	assert.Equal(t, time.Second, GetEnvDuration("FEEDSHELF_TEST_DURATION", time.Second))
}

func TestValidateDurationRange(t *testing.T) {
	assert.NoError(t, ValidateDurationRange(time.Minute, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(time.Millisecond, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(2*time.Hour, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(time.Minute, time.Hour, time.Second))
}
