package logger

import (
	"testing"

	"github.com/ciex/motor/internal/infra/config"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.AppConfig
		wantLevel logrus.Level
		wantJSON  bool
	}{
		{name: "development", cfg: config.AppConfig{LogLevel: "debug", Environment: "development"}, wantLevel: logrus.DebugLevel},
		{name: "production", cfg: config.AppConfig{LogLevel: "warn", Environment: "production"}, wantLevel: logrus.WarnLevel, wantJSON: true},
		{name: "invalid level", cfg: config.AppConfig{LogLevel: "loud", Environment: "staging"}, wantLevel: logrus.InfoLevel, wantJSON: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Init(&tt.cfg)

			assert.Equal(t, tt.wantLevel, Log.GetLevel())
			_, isJSON := Log.Formatter.(*logrus.JSONFormatter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

func TestComponent(t *testing.T) {
	entry := Component("sweep")
	assert.Equal(t, "sweep", entry.Data["component"])
}
