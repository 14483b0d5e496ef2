package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm/logger"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, LogLevel("development"))
	assert.Equal(t, logger.Warn, LogLevel("production"))
	assert.Equal(t, logger.Warn, LogLevel(""))
}
