package log

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromEnv(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, levelFromEnv(""))
	assert.Equal(t, logrus.WarnLevel, levelFromEnv("warn"))
	assert.Equal(t, logrus.DebugLevel, levelFromEnv("loud"))
}
