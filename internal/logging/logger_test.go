package logging

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_CarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	Setup("debug", true)
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	ctx := WithRequestID(context.Background(), "rid-42")
	NewLogger(ctx).LogError("orders.list", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"request_id":"rid-42"`)
	assert.Contains(t, out, `"operation":"orders.list"`)
	assert.Contains(t, out, "boom")
}

func TestNewLogger_UnknownRequestID(t *testing.T) {
	var buf bytes.Buffer
	Setup("info", true)
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	NewLogger(context.Background()).LogInfo("startup", "ready")
	assert.Contains(t, buf.String(), `"request_id":"unknown"`)
}

func TestSetup_InvalidLevelFallsBackToInfo(t *testing.T) {
	Setup("chatty", false)
	assert.Equal(t, "info", Base().GetLevel().String())
}
