package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Canvas hooks
	cv := NoopCanvasHooks{}
	cv.OnPlace(1, "button", "body")
	cv.OnMove(1)
	cv.OnRemove(1)
	cv.OnClear()

	// Generate hooks
	g := NoopGenerateHooks{}
	g.OnGenerateStart(ctx, 3)
	g.OnGenerateComplete(ctx, 3, 1024, time.Second, nil)

	// Cache hooks
	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "markup")
	c.OnCacheMiss(ctx, "document")
	c.OnCacheSet(ctx, "markup", 1024)

	// HTTP hooks
	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "assist.example.com", "/v1/generate")
	h.OnResponse(ctx, "POST", "assist.example.com", "/v1/generate", 200, time.Second)
	h.OnError(ctx, "POST", "assist.example.com", "/v1/generate", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Canvas().(NoopCanvasHooks); !ok {
		t.Error("Canvas() should return NoopCanvasHooks by default")
	}
	if _, ok := Generate().(NoopGenerateHooks); !ok {
		t.Error("Generate() should return NoopGenerateHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	// Set custom hooks
	customCanvas := &testCanvasHooks{}
	SetCanvasHooks(customCanvas)
	if Canvas() != customCanvas {
		t.Error("SetCanvasHooks should set custom hooks")
	}

	customGenerate := &testGenerateHooks{}
	SetGenerateHooks(customGenerate)
	if Generate() != customGenerate {
		t.Error("SetGenerateHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Canvas().(NoopCanvasHooks); !ok {
		t.Error("Reset() should restore NoopCanvasHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testCanvasHooks{}
	SetCanvasHooks(custom)

	// Setting nil should be ignored
	SetCanvasHooks(nil)

	if Canvas() != custom {
		t.Error("SetCanvasHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testCanvasHooks struct{ NoopCanvasHooks }
type testGenerateHooks struct{ NoopGenerateHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
