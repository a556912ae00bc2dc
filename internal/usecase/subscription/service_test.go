package subscription_test

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"feedshelf/internal/domain/entity"
	"feedshelf/internal/opml"
	"feedshelf/internal/usecase/subscription"
)

/*────────────────────  in-memory stubs  ────────────────────*/

type memStore struct {
	mu    sync.Mutex
	files map[string][]byte
	err   error
}

func newMemStore() *memStore { return &memStore{files: map[string][]byte{}} }

func (s *memStore) Read(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("read %s: %w", path, fs.ErrNotExist)
	}
	return data, nil
}

func (s *memStore) Write(_ context.Context, path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.files[path] = append([]byte(nil), data...)
	return nil
}

type stubRepo struct {
	folders []*entity.Folder
	err     error
}

func (r *stubRepo) ReplaceAll(_ context.Context, folders []*entity.Folder) error {
	if r.err != nil {
		return r.err
	}
	r.folders = folders
	return nil
}

func (r *stubRepo) ListFolders(_ context.Context) ([]*entity.Folder, error) {
	return r.folders, r.err
}

func sample(t *testing.T) *entity.Manager {
	t.Helper()
	m := entity.NewManager()
	m.DefaultFolder().AddSource(entity.NewSource("https://lwn.net/headlines/rss", "LWN"))
	tech, err := m.AddFolderByName("Tech")
	require.NoError(t, err)
	tech.AddSource(entity.NewSource("https://go.dev/blog/feed.atom", "Go Blog"))
	return m
}

/*────────────────────  LoadFile / SaveFile  ────────────────────*/

func TestService_SaveThenLoad(t *testing.T) {
	store := newMemStore()
	svc := &subscription.Service{Store: store, Title: "My Feeds"}
	ctx := context.Background()

	require.NoError(t, svc.SaveFile(ctx, sample(t), "subs.opml"))
	assert.Contains(t, string(store.files["subs.opml"]), "<title>My Feeds</title>")

	m := entity.NewManager()
	require.NoError(t, svc.LoadFile(ctx, m, "subs.opml"))

	assert.Equal(t, 2, m.SourceCount())
	tech, ok := m.GetFolder("Tech")
	require.True(t, ok)
	assert.Equal(t, "Go Blog", tech.Sources[0].Name)
}

func TestService_SaveFile_DefaultTitle(t *testing.T) {
	store := newMemStore()
	svc := &subscription.Service{Store: store}

	require.NoError(t, svc.SaveFile(context.Background(), entity.NewManager(), "subs.opml"))
	assert.Contains(t, string(store.files["subs.opml"]), "<title>"+subscription.DefaultTitle+"</title>")
}

func TestService_LoadFile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*memStore)
		check func(*testing.T, error)
	}{
		{
			name:  "missing file",
			setup: func(*memStore) {},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, fs.ErrNotExist) },
		},
		{
			name:  "document without body",
			setup: func(s *memStore) { s.files["subs.opml"] = []byte(`<opml version="1.0"><head><title>t</title></head></opml>`) },
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, opml.ErrFormat) },
		},
		{
			name: "feed without locator",
			setup: func(s *memStore) {
				s.files["subs.opml"] = []byte(`<opml version="1.0"><head><title>t</title></head>
<body><outline title="A" text="A" type="rss"/></body></opml>`)
			},
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, opml.ErrMissingLocator) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			tt.setup(store)
			svc := &subscription.Service{Store: store}

			m := sample(t)
			err := svc.LoadFile(context.Background(), m, "subs.opml")
			require.Error(t, err)
			tt.check(t, err)
			assert.Equal(t, 2, m.SourceCount(), "manager must be left untouched")
		})
	}
}

func TestService_SaveFile_WriteError(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("read-only file system")
	svc := &subscription.Service{Store: store}

	err := svc.SaveFile(context.Background(), sample(t), "subs.opml")
	assert.ErrorIs(t, err, store.err)
}

func TestService_LoadFile_RecordsSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	svc := &subscription.Service{Store: newMemStore()}
	_ = svc.LoadFile(context.Background(), entity.NewManager(), "absent.opml")

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "subscription.load", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
}

/*────────────────────  Push / Pull  ────────────────────*/

func TestService_PushThenPull(t *testing.T) {
	repo := &stubRepo{}
	svc := &subscription.Service{Repo: repo}
	ctx := context.Background()

	require.NoError(t, svc.Push(ctx, sample(t)))
	require.Len(t, repo.folders, 2)
	assert.Equal(t, entity.DefaultFolderName, repo.folders[0].Name)

	m := entity.NewManager()
	require.NoError(t, svc.Pull(ctx, m))
	assert.Equal(t, 2, m.SourceCount())
	assert.Equal(t, "LWN", m.DefaultFolder().Sources[0].Name)
	_, ok := m.GetFolder("Tech")
	assert.True(t, ok)
}

func TestService_Pull_EmptyRepository(t *testing.T) {
	svc := &subscription.Service{Repo: &stubRepo{}}
	m := sample(t)

	require.NoError(t, svc.Pull(context.Background(), m))
	assert.Equal(t, 0, m.SourceCount())
	assert.Len(t, m.Folders(), 1)
}

func TestService_Pull_ErrorLeavesManager(t *testing.T) {
	repo := &stubRepo{err: errors.New("connection refused")}
	svc := &subscription.Service{Repo: repo}
	m := sample(t)

	err := svc.Pull(context.Background(), m)
	assert.ErrorIs(t, err, repo.err)
	assert.Equal(t, 2, m.SourceCount())
}

func TestService_RepositoryNotConfigured(t *testing.T) {
	svc := &subscription.Service{}
	ctx := context.Background()

	assert.ErrorIs(t, svc.Push(ctx, entity.NewManager()), subscription.ErrRepositoryNotConfigured)
	assert.ErrorIs(t, svc.Pull(ctx, entity.NewManager()), subscription.ErrRepositoryNotConfigured)
}
