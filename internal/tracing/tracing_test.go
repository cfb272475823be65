package tracing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"resume-analyzer/internal/config"
)

func TestMaskPII(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "*"},
		{"张三", "张*"},
		{"王小明", "王*明"},
		{"Jane", "J**e"},
		{"jane.doe@example.com", "ja****************om"},
		{"+91 98765 43210", "+9***********10"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskPII(tt.in), "输入: %q", tt.in)
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", TruncateString("short", 10))
	assert.Equal(t, "abc", TruncateString("abcdef", 3))
	assert.Equal(t, "ab...gh", TruncateString("abcdefgh", 7))
	assert.Equal(t, "简历...内容", TruncateString("简历的很长很长的内容", 7), "按字符而不是字节截断")
}

func TestSafeAttributeValue(t *testing.T) {
	assert.Equal(t, "ja****************om", SafeAttributeValue("resume.email", "jane.doe@example.com", 100))
	assert.Equal(t, "J**e", SafeAttributeValue("Resume.Name", "Jane", 100), "属性名不区分大小写")
	assert.Equal(t, "Software Engineer", SafeAttributeValue("resume.category", "Software Engineer", 100))
	assert.Equal(t, "ab...gh", SafeAttributeValue("resume.filename", "abcdefgh", 7))
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	tracer := tp.Tracer("test")

	_, span := tracer.Start(context.Background(), "analyze")
	RecordError(span, errors.New("不支持的文件格式"), ErrorTypeValidation, attribute.String("file.ext", ".exe"))
	RecordError(span, nil, ErrorTypeParse) // nil 错误不记录
	span.End()

	_, httpSpan := tracer.Start(context.Background(), "http")
	RecordHTTPError(httpSpan, errors.New("too large"), 413)
	httpSpan.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	attrs := attrMap(spans[0].Attributes())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "validation", attrs["error.type"])
	assert.Equal(t, ".exe", attrs["file.ext"])
	assert.Len(t, spans[0].Events(), 1, "只记录一次错误事件")

	httpAttrs := attrMap(spans[1].Attributes())
	assert.Equal(t, "http", httpAttrs["error.type"])
	assert.Equal(t, "client_error", httpAttrs["error.category"])
	assert.Equal(t, int64(413), httpAttrs["http.status_code"])
}

func attrMap(kvs []attribute.KeyValue) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value.AsInterface()
	}
	return m
}

func TestInitProviderDisabled(t *testing.T) {
	shutdown, err := InitProvider(context.Background(), config.TracingConfig{Enabled: false})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitProviderEnabled(t *testing.T) {
	// gRPC 连接是惰性的，没有 collector 时初始化也应成功
	shutdown, err := InitProvider(context.Background(), config.TracingConfig{
		Enabled:     true,
		Endpoint:    "127.0.0.1:4317",
		Insecure:    true,
		SampleRatio: 1,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.NoError(t, shutdown(ctx), "没有待导出的 span 时关闭不应失败")
}
