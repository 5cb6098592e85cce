package ocr

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

type mockRecognizer struct {
	mock.Mock
}

func (m *mockRecognizer) RecognizeText(ctx context.Context, image []byte) (string, error) {
	args := m.Called(ctx, image)
	return args.String(0), args.Error(1)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, key, text string) error {
	return m.Called(ctx, key, text).Error(0)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestDigest_Stable(t *testing.T) {
	assert.Equal(t, Digest([]byte("receipt")), Digest([]byte("receipt")))
	assert.NotEqual(t, Digest([]byte("receipt")), Digest([]byte("receipt2")))
	assert.Len(t, Digest(nil), 64)
}

func TestCachedRecognizer_MissThenHit(t *testing.T) {
	image := []byte("jpeg-bytes")
	next := new(mockRecognizer)
	next.On("RecognizeText", mock.Anything, image).Return("합계 12,000원", nil).Once()

	cache, err := NewLRUCache(8, time.Hour)
	require.NoError(t, err)
	r := NewCachedRecognizer(next, cache, quietLogger())

	for i := 0; i < 3; i++ {
		text, err := r.RecognizeText(context.Background(), image)
		require.NoError(t, err)
		assert.Equal(t, "합계 12,000원", text)
	}
	next.AssertExpectations(t)
}

func TestCachedRecognizer_ErrorsAreNotCached(t *testing.T) {
	image := []byte("jpeg-bytes")
	next := new(mockRecognizer)
	next.On("RecognizeText", mock.Anything, image).Return("", errors.New("quota exceeded")).Once()
	next.On("RecognizeText", mock.Anything, image).Return("TOTAL 5000", nil).Once()

	cache, err := NewLRUCache(8, time.Hour)
	require.NoError(t, err)
	r := NewCachedRecognizer(next, cache, quietLogger())

	_, err = r.RecognizeText(context.Background(), image)
	assert.Error(t, err)

	text, err := r.RecognizeText(context.Background(), image)
	require.NoError(t, err)
	assert.Equal(t, "TOTAL 5000", text)
}

func TestCachedRecognizer_CacheFailureFallsThrough(t *testing.T) {
	image := []byte("jpeg-bytes")
	next := new(mockRecognizer)
	next.On("RecognizeText", mock.Anything, image).Return("text", nil)

	cache := new(mockCache)
	cache.On("Get", mock.Anything, Digest(image)).Return("", false, errors.New("redis down"))
	cache.On("Set", mock.Anything, Digest(image), "text").Return(errors.New("redis down"))

	text, err := NewCachedRecognizer(next, cache, quietLogger()).RecognizeText(context.Background(), image)
	require.NoError(t, err)
	assert.Equal(t, "text", text)
	cache.AssertExpectations(t)
}

func TestLRUCache_Expiry(t *testing.T) {
	cache, err := NewLRUCache(8, time.Minute)
	require.NoError(t, err)
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(context.Background(), "k", "v"))
	text, ok, err := cache.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", text)

	now = now.Add(2 * time.Minute)
	_, ok, err = cache.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLRUCache_EvictsOldest(t *testing.T) {
	cache, err := NewLRUCache(2, 0)
	require.NoError(t, err)

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, cache.Set(context.Background(), key, key))
	}

	_, ok, _ := cache.Get(context.Background(), "a")
	assert.False(t, ok)
	_, ok, _ = cache.Get(context.Background(), "c")
	assert.True(t, ok)
}

type stubRedis struct {
	getResult *redis.StringCmd
	setKey    string
	setTTL    time.Duration
}

func (s *stubRedis) Get(_ context.Context, key string) *redis.StringCmd {
	return s.getResult
}

func (s *stubRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	s.setKey = key
	s.setTTL = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestRedisCache(t *testing.T) {
	client := &stubRedis{getResult: redis.NewStringResult("", redis.Nil)}
	cache := &RedisCache{client: client, prefix: redisPrefix, ttl: time.Hour}

	_, ok, err := cache.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(context.Background(), "abc", "text"))
	assert.Equal(t, "club-budget:ocr:abc", client.setKey)
	assert.Equal(t, time.Hour, client.setTTL)

	client.getResult = redis.NewStringResult("text", nil)
	text, ok, err := cache.Get(context.Background(), "abc")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "text", text)

	client.getResult = redis.NewStringResult("", errors.New("connection refused"))
	_, _, err = cache.Get(context.Background(), "abc")
	assert.Error(t, err)
}

func newTestVision(t *testing.T, handler http.HandlerFunc) *VisionRecognizer {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	v, err := NewVisionRecognizer(context.Background(), "",
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()),
	)
	require.NoError(t, err)
	return v
}

func TestVisionRecognizer_FullText(t *testing.T) {
	v := newTestVision(t, func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&req)
		assert.Contains(t, r.URL.Path, "images:annotate")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[{"fullTextAnnotation":{"text":"결제금액 12,000원"}}]}`))
	})

	text, err := v.RecognizeText(context.Background(), []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "결제금액 12,000원", text)
}

func TestVisionRecognizer_ResponseError(t *testing.T) {
	v := newTestVision(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"responses":[{"error":{"code":3,"message":"bad image data"}}]}`))
	})

	_, err := v.RecognizeText(context.Background(), []byte("img"))
	assert.ErrorContains(t, err, "bad image data")
}

func TestUnavailable(t *testing.T) {
	_, err := Unavailable{}.RecognizeText(context.Background(), nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}
