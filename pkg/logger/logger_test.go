package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestInit_Level(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	Init("test", "debug")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	Init("test", "nonsense")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	Init("test", "")
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
