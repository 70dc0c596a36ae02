package service

import (
	"bytes"
	"context"
	"image"
	"image/color/palette"
	"image/gif"
	"net/http"
	"sync"
	"testing"

	"ariavt-server/internal/common"
	"ariavt-server/internal/consts"
	"ariavt-server/internal/model"
	"ariavt-server/internal/modules/analysis/dto"
	"ariavt-server/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 测试内容：measurement 服务首次调用返回 {"value": 42} 并保存，再次调用命中缓存不再访问外部服务，强制分析会重新调用。
func TestAnalyze_MeasurementScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fake := newFakeService(t, jsonBody(`{"value": 42}`))
	svc := testutils.CreateService(t, env.gdb, "measure", fake.URL, consts.ResultTypeMeasurement)

	req := AnalyzeRequest{ImageID: env.image.ID, ServiceID: svc.ID, Actor: env.actor(env.owner)}

	first, err := env.orch.Analyze(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.JSONEq(t, `{"value": 42}`, string(first.Payload.Bytes()))
	assert.Equal(t, int32(1), fake.hits.Load())

	second, err := env.orch.Analyze(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Payload.Bytes(), second.Payload.Bytes())
	assert.Equal(t, int32(1), fake.hits.Load())

	req.Force = true
	third, err := env.orch.Analyze(ctx, req)
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.Equal(t, int32(2), fake.hits.Load())
	assert.Equal(t, int64(1), env.countResults(t))

	stored, err := env.files.Read(ctx, ResultKey(env.image.ID, svc.ID, "measure", ".json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"value": 42}`, string(stored))
}

// 测试内容：image 服务返回图片时按内容类型缓存，两次调用字节一致。
func TestAnalyze_ImageResultCachedIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	png := testutils.MinimalPNG(t, 3, 3, 99)
	fake := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	})
	svc := testutils.CreateService(t, env.gdb, "segment", fake.URL, consts.ResultTypeImage)
	req := AnalyzeRequest{ImageID: env.image.ID, ServiceID: svc.ID, Actor: env.actor(env.owner)}

	first, err := env.orch.Analyze(ctx, req)
	require.NoError(t, err)
	second, err := env.orch.Analyze(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, png, first.Payload.Bytes())
	assert.Equal(t, first.Payload.Bytes(), second.Payload.Bytes())
	assert.Equal(t, "image/png", second.Payload.ContentType())
	assert.Equal(t, int32(1), fake.hits.Load())
	assert.Equal(t, ResultKey(env.image.ID, svc.ID, "segment", ".png"), second.Result.Path)
}

// 测试内容：强制分析在格式变化时覆盖记录并删除旧后缀的文件，只保留一份结果。
func TestAnalyze_ForceReplacesPreviousFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var mu sync.Mutex
	body := testutils.MinimalPNG(t, 2, 2, 1)
	fake := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_, _ = w.Write(body)
	})
	svc := testutils.CreateService(t, env.gdb, "seg", fake.URL, consts.ResultTypeImage)
	req := AnalyzeRequest{ImageID: env.image.ID, ServiceID: svc.ID, Actor: env.actor(env.owner)}

	_, err := env.orch.Analyze(ctx, req)
	require.NoError(t, err)

	var gifBuf bytes.Buffer
	require.NoError(t, gif.Encode(&gifBuf, image.NewPaletted(image.Rect(0, 0, 2, 2), palette.Plan9), nil))
	mu.Lock()
	body = gifBuf.Bytes()
	mu.Unlock()

	req.Force = true
	out, err := env.orch.Analyze(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, ResultKey(env.image.ID, svc.ID, "seg", ".gif"), out.Result.Path)
	assert.Equal(t, int64(1), env.countResults(t))

	ok, err := env.files.Exists(ctx, ResultKey(env.image.ID, svc.ID, "seg", ".png"))
	require.NoError(t, err)
	assert.False(t, ok)
}

// 测试内容：非所有者请求分析返回 unauthorized，无论服务是否存在，且不会调用外部服务。
func TestAnalyze_NonOwnerUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fake := newFakeService(t, jsonBody(`{}`))
	svc := testutils.CreateService(t, env.gdb, "m", fake.URL, consts.ResultTypeMeasurement)

	for _, serviceID := range []uint{svc.ID, 9999} {
		_, err := env.orch.Analyze(ctx, AnalyzeRequest{ImageID: env.image.ID, ServiceID: serviceID, Actor: env.actor(env.other)})
		assert.True(t, common.HasCode(err, common.ErrorCodeUnauthorized), "service=%d err=%v", serviceID, err)
	}
	assert.Zero(t, fake.hits.Load())

	// 管理员可以分析他人图片
	_, err := env.orch.Analyze(ctx, AnalyzeRequest{ImageID: env.image.ID, ServiceID: svc.ID, Actor: env.actor(env.admin)})
	assert.NoError(t, err)
}

// 测试内容：上游返回无法解释的内容时返回 invalid_payload 且不产生结果记录。
func TestAnalyze_InvalidUpstreamPayload(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fake := newFakeService(t, jsonBody(`not an image and not json`))
	imgSvc := testutils.CreateService(t, env.gdb, "img", fake.URL, consts.ResultTypeImage)
	msrSvc := testutils.CreateService(t, env.gdb, "msr", fake.URL, consts.ResultTypeMeasurement)

	for _, svc := range []*model.Service{imgSvc, msrSvc} {
		_, err := env.orch.Analyze(ctx, AnalyzeRequest{ImageID: env.image.ID, ServiceID: svc.ID, Actor: env.actor(env.owner)})
		assert.True(t, common.HasCode(err, common.ErrorCodeInvalidPayload), "service=%s err=%v", svc.Name, err)
	}
	assert.Zero(t, env.countResults(t))
}

// 测试内容：未知服务返回 not_found，且不发生任何网络调用。
func TestAnalyze_UnknownServiceNotFound(t *testing.T) {
	env := newTestEnv(t)
	fake := newFakeService(t, jsonBody(`{}`))

	_, err := env.orch.Analyze(context.Background(), AnalyzeRequest{ImageID: env.image.ID, ServiceID: 4242, Actor: env.actor(env.owner)})
	assert.True(t, common.HasCode(err, common.ErrorCodeNotFound))
	assert.Zero(t, fake.hits.Load())
}

// 测试内容：图片记录不存在返回 not_found；记录存在但文件缺失同样返回 not_found。
func TestAnalyze_MissingImage(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fake := newFakeService(t, jsonBody(`{}`))
	svc := testutils.CreateService(t, env.gdb, "m", fake.URL, consts.ResultTypeMeasurement)

	_, err := env.orch.Analyze(ctx, AnalyzeRequest{ImageID: 777, ServiceID: svc.ID, Actor: env.actor(env.owner)})
	assert.True(t, common.HasCode(err, common.ErrorCodeNotFound))

	require.NoError(t, env.files.Delete(ctx, env.image.Path))
	_, err = env.orch.Analyze(ctx, AnalyzeRequest{ImageID: env.image.ID, ServiceID: svc.ID, Actor: env.actor(env.owner)})
	assert.True(t, common.HasCode(err, common.ErrorCodeNotFound))
	assert.Zero(t, fake.hits.Load())
}

// 测试内容：上游返回 5xx 时映射为 upstream_unavailable，且不重试。
func TestAnalyze_UpstreamUnavailable(t *testing.T) {
	env := newTestEnv(t)
	fake := newFakeService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	svc := testutils.CreateService(t, env.gdb, "down", fake.URL, consts.ResultTypeMeasurement)

	_, err := env.orch.Analyze(context.Background(), AnalyzeRequest{ImageID: env.image.ID, ServiceID: svc.ID, Actor: env.actor(env.owner)})
	assert.True(t, common.HasCode(err, common.ErrorCodeUpstreamUnavailable))
	assert.Equal(t, int32(1), fake.hits.Load())
	assert.Zero(t, env.countResults(t))
}

// 测试内容：服务记录中出现未知结果类型时返回 unknown_result_type 且不调用外部服务。
func TestAnalyze_UnknownResultType(t *testing.T) {
	env := newTestEnv(t)
	fake := newFakeService(t, jsonBody(`{}`))
	svc := testutils.CreateService(t, env.gdb, "legacy", fake.URL, consts.ResultType("histogram"))

	_, err := env.orch.Analyze(context.Background(), AnalyzeRequest{ImageID: env.image.ID, ServiceID: svc.ID, Actor: env.actor(env.owner)})
	assert.True(t, common.HasCode(err, common.ErrorCodeUnknownResultType))
	assert.Zero(t, fake.hits.Load())
}

// 测试内容：并发的相同请求只会调用外部服务一次。
func TestAnalyze_ConcurrentSamePairInvokesOnce(t *testing.T) {
	env := newTestEnv(t)
	fake := newFakeService(t, jsonBody(`{"value": 1}`))
	svc := testutils.CreateService(t, env.gdb, "m", fake.URL, consts.ResultTypeMeasurement)
	req := AnalyzeRequest{ImageID: env.image.ID, ServiceID: svc.ID, Actor: env.actor(env.owner)}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.orch.Analyze(context.Background(), req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int32(1), fake.hits.Load())
	assert.Equal(t, int64(1), env.countResults(t))
}

// 测试内容：缓存记录存在但文件丢失时重新分析而不是报错。
func TestAnalyze_CachedFileMissingReanalyzes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fake := newFakeService(t, jsonBody(`{"value": 3}`))
	svc := testutils.CreateService(t, env.gdb, "m", fake.URL, consts.ResultTypeMeasurement)
	req := AnalyzeRequest{ImageID: env.image.ID, ServiceID: svc.ID, Actor: env.actor(env.owner)}

	first, err := env.orch.Analyze(ctx, req)
	require.NoError(t, err)
	require.NoError(t, env.files.Delete(ctx, first.Result.Path))

	out, err := env.orch.Analyze(ctx, req)
	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.Equal(t, int32(2), fake.hits.Load())
}

// 测试内容：Discard 删除缓存结果，非所有者被拒绝，结果不存在返回 not_found。
func TestDiscard(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	fake := newFakeService(t, jsonBody(`{"value": 5}`))
	svc := testutils.CreateService(t, env.gdb, "m", fake.URL, consts.ResultTypeMeasurement)

	out, err := env.orch.Analyze(ctx, AnalyzeRequest{ImageID: env.image.ID, ServiceID: svc.ID, Actor: env.actor(env.owner)})
	require.NoError(t, err)

	err = env.orch.Discard(ctx, env.actor(env.other), svc.ID, env.image.ID)
	assert.True(t, common.HasCode(err, common.ErrorCodeUnauthorized))

	require.NoError(t, env.orch.Discard(ctx, env.actor(env.owner), svc.ID, env.image.ID))
	assert.Zero(t, env.countResults(t))
	ok, _ := env.files.Exists(ctx, out.Result.Path)
	assert.False(t, ok)

	err = env.orch.Discard(ctx, env.actor(env.owner), svc.ID, env.image.ID)
	assert.True(t, common.HasCode(err, common.ErrorCodeNotFound))
}

// 测试内容：服务改名后原名被新服务复用，两个服务的缓存结果互不影响，强制重算也不会删除对方的文件。
func TestAnalyze_RenameThenNameReuseKeepsResultsApart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.actor(env.admin)

	fakeA := newFakeService(t, jsonBody(`{"from": "A"}`))
	a := testutils.CreateService(t, env.gdb, "x", fakeA.URL, consts.ResultTypeMeasurement)
	reqA := AnalyzeRequest{ImageID: env.image.ID, ServiceID: a.ID, Actor: env.actor(env.owner)}
	_, err := env.orch.Analyze(ctx, reqA)
	require.NoError(t, err)

	_, err = env.registry.Update(ctx, admin, a.ID, dto.UpdateServiceRequest{Name: strPtr("y")})
	require.NoError(t, err)

	fakeB := newFakeService(t, jsonBody(`{"from": "B"}`))
	b, err := env.registry.Create(ctx, admin, dto.CreateServiceRequest{Name: "x", URL: fakeB.URL, ResultType: consts.ResultTypeMeasurement})
	require.NoError(t, err)
	reqB := AnalyzeRequest{ImageID: env.image.ID, ServiceID: b.ID, Actor: env.actor(env.owner)}
	outB, err := env.orch.Analyze(ctx, reqB)
	require.NoError(t, err)
	assert.False(t, outB.Cached)
	assert.JSONEq(t, `{"from": "B"}`, string(outB.Payload.Bytes()))

	outA, err := env.orch.Analyze(ctx, reqA)
	require.NoError(t, err)
	assert.True(t, outA.Cached)
	assert.JSONEq(t, `{"from": "A"}`, string(outA.Payload.Bytes()))
	assert.Equal(t, int32(1), fakeA.hits.Load())
	assert.NotEqual(t, outA.Result.Path, outB.Result.Path)

	reqA.Force = true
	_, err = env.orch.Analyze(ctx, reqA)
	require.NoError(t, err)

	cachedB, err := env.orch.Analyze(ctx, reqB)
	require.NoError(t, err)
	assert.True(t, cachedB.Cached)
	assert.JSONEq(t, `{"from": "B"}`, string(cachedB.Payload.Bytes()))
	assert.Equal(t, int32(1), fakeB.hits.Load())
	assert.Equal(t, int64(2), env.countResults(t))
}
