package parser

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var mockPDFContent = []byte("%PDF-1.5\nMock PDF content for testing\nThis is not a real PDF file\n")

func TestNewTikaPDFExtractor(t *testing.T) {
	extractor := NewTikaPDFExtractor("http://localhost:9998/")
	require.NotNil(t, extractor.Client, "HTTP客户端不应为nil")
	assert.Equal(t, "http://localhost:9998", extractor.ServerURL, "末尾的斜杠应被去掉")
	assert.Equal(t, 60*time.Second, extractor.Client.Timeout, "HTTP客户端超时应为60秒")
	assert.False(t, extractor.extractFullMetadata, "默认应该不提取完整元数据")
	assert.True(t, extractor.extractMinimalMetadata, "默认应该提取精简元数据")

	custom := NewTikaPDFExtractor("http://tika:9998",
		WithFullMetadata(true),
		WithMinimalMetadata(false),
		WithAnnotations(false),
		WithTikaLogger(zerolog.Nop()),
		WithTimeout(30*time.Second),
	)
	assert.True(t, custom.extractFullMetadata)
	assert.False(t, custom.extractMinimalMetadata)
	assert.False(t, custom.extractAnnotations)
	assert.Equal(t, 30*time.Second, custom.Client.Timeout, "应该使用自定义超时")
}

func TestMetadataModeOptions(t *testing.T) {
	full := NewTikaPDFExtractor("http://x", MetadataModeOptions("FULL")...)
	assert.True(t, full.extractFullMetadata)

	none := NewTikaPDFExtractor("http://x", MetadataModeOptions("none")...)
	assert.False(t, none.extractFullMetadata)
	assert.False(t, none.extractMinimalMetadata)

	minimal := NewTikaPDFExtractor("http://x", MetadataModeOptions("")...)
	assert.True(t, minimal.extractMinimalMetadata)
}

// 创建一个模拟的Tika服务器
func createMockTikaServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		switch r.URL.Path {
		case "/tika":
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Jane Doe\nPython developer, 北京"))
		case "/meta":
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{
				"Content-Type": "application/pdf",
				"pdf:PDFVersion": "1.5",
				"dc:title": "测试文档",
				"X-TIKA:Parsed-By": "org.apache.tika.parser.DefaultParser",
				"xmpTPg:NPages": 2
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestTikaMetadataModes(t *testing.T) {
	server := createMockTikaServer(t)
	ctx := context.Background()

	text, meta, err := NewTikaPDFExtractor(server.URL, MetadataModeOptions("none")...).
		ExtractTextFromBytes(ctx, mockPDFContent, "test.pdf", map[string]interface{}{"analysis_id": "a1"})
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nPython developer, 北京", text)
	assert.Equal(t, "a1", meta["analysis_id"], "调用方传入的元数据应保留")
	assert.Contains(t, meta, "processing_duration_ms")
	assert.NotContains(t, meta, "pdf:PDFVersion", "不应包含PDF元数据")

	_, meta, err = NewTikaPDFExtractor(server.URL).ExtractTextFromBytes(ctx, mockPDFContent, "test.pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, "测试文档", meta["dc:title"])
	assert.Equal(t, float64(2), meta["xmpTPg:NPages"])
	assert.NotContains(t, meta, "X-TIKA:Parsed-By", "精简模式不包含不重要元数据")

	_, meta, err = NewTikaPDFExtractor(server.URL, WithFullMetadata(true)).
		ExtractTextFromReader(ctx, bytes.NewReader(mockPDFContent), "test.pdf", nil)
	require.NoError(t, err)
	assert.Contains(t, meta, "X-TIKA:Parsed-By", "完整模式包含全部元数据")
}

// 验证对Tika的请求包含UTF-8相关的头
func TestTikaRequestHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("你好，世界"))
	}))
	defer server.Close()

	extractor := NewTikaPDFExtractor(server.URL, MetadataModeOptions("none")...)
	text, _, err := extractor.ExtractTextFromBytes(context.Background(), mockPDFContent, "cv.pdf", nil)
	require.NoError(t, err)
	assert.Equal(t, "你好，世界", text)

	require.NotNil(t, got)
	assert.Equal(t, "text/plain; charset=utf-8", got.Get("Accept"))
	assert.Equal(t, "utf-8", got.Get("Accept-Charset"))
	assert.Equal(t, "application/pdf", got.Get("Content-Type"))
	assert.Equal(t, "cv.pdf", got.Get("X-Tika-Resource-Name"))
}

func TestTikaMetadataFailureKeepsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/meta" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("text only"))
	}))
	defer server.Close()

	text, meta, err := NewTikaPDFExtractor(server.URL).ExtractTextFromBytes(context.Background(), mockPDFContent, "a.pdf", nil)
	require.NoError(t, err, "元数据失败不应影响文本提取")
	assert.Equal(t, "text only", text)
	assert.Equal(t, len("text only"), meta["text_length"])
}

func TestTikaServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, _, err := NewTikaPDFExtractor(server.URL).ExtractTextFromBytes(context.Background(), mockPDFContent, "a.pdf", nil)
	require.Error(t, err, "服务器错误应该导致提取失败")
	assert.Contains(t, err.Error(), "Tika服务器返回错误状态码")
}

func TestTikaConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, _, err := NewTikaPDFExtractor(url).ExtractTextFromBytes(context.Background(), mockPDFContent, "a.pdf", nil)
	require.Error(t, err, "连接错误应该导致提取失败")
	assert.Contains(t, err.Error(), "发送请求到Tika服务器失败")
}
