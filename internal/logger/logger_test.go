package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitJSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	closer, err := InitWithOutput(Config{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	Info().Msg("被过滤")
	Warn().Str("category", "Finance").Msg("分析完成")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1, "低于 warn 的日志不应输出")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "Finance", entry["category"])
	assert.Equal(t, "分析完成", entry["message"])
}

func TestInitWithFile(t *testing.T) {
	var buf bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "logs", "app.log")

	closer, err := InitWithOutput(Config{Level: "debug", Format: "pretty", File: logFile}, &buf)
	require.NoError(t, err)
	Debug().Msg("写入文件")
	require.NoError(t, closer.Close())
	defer zerolog.SetGlobalLevel(zerolog.DebugLevel)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"写入文件"`, "文件中是 JSON 格式")
	assert.Contains(t, buf.String(), "写入文件", "控制台同时输出")
}

func TestCtx(t *testing.T) {
	var buf bytes.Buffer
	closer, err := InitWithOutput(Config{Level: "info"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	// 上下文中没有 logger 时回退到全局 Logger
	Ctx(context.Background()).Info().Msg("fallback")
	assert.Contains(t, buf.String(), "fallback")

	buf.Reset()
	ctx := WithContext(context.Background())
	Ctx(ctx).Info().Msg("from ctx")
	assert.Contains(t, buf.String(), "from ctx")
}
