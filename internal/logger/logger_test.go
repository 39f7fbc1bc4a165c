package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestInitSetsLevelByMode(t *testing.T) {
	Init("release")
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())

	Init("debug")
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestGetReturnsSharedLogger(t *testing.T) {
	Init("debug")

	require.Same(t, Get(), Get())

	// Event methods chain directly off Get.
	Get().Debug().Str("check", "ok").Msg("logger wired")
}
