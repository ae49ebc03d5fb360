package loki

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type MockReporter struct{}

func (m *MockReporter) Error(msg string, args ...any) {
}

func Test_ConfigValidation(t *testing.T) {
	cfg := Config{}
	_, err := New(context.Background(), cfg, &MockReporter{})
	assert.Error(t, err)

	cfg.PushURL = "SomeUrl"
	client, err := New(context.Background(), cfg, &MockReporter{})
	assert.NoError(t, err)
	assert.Equal(t, cfg.PushURL, client.config.PushURL)
	assert.Equal(t, 1000, client.config.BatchMaxSize)
	assert.Equal(t, 5*time.Second, client.config.BatchMaxWait)
	assert.Equal(t, map[string]string{}, client.config.Labels)
}
