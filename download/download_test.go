package download_test

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/arenadl"
	"github.com/fwojciec/arenadl/mock"
)

// fakeTimer fires immediately and records every requested wait.
type fakeTimer struct {
	mu    sync.Mutex
	waits []time.Duration
	c     chan time.Time
}

func newFakeTimer() *fakeTimer {
	return &fakeTimer{c: make(chan time.Time, 1)}
}

func (t *fakeTimer) Start(d time.Duration) {
	t.mu.Lock()
	t.waits = append(t.waits, d)
	t.mu.Unlock()
	t.c <- time.Time{}
}

func (t *fakeTimer) Stop() {}

func (t *fakeTimer) C() <-chan time.Time { return t.c }

func (t *fakeTimer) Waits() []time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]time.Duration(nil), t.waits...)
}

// memStore is an in-memory arenadl.AssetStore.
type memStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemStore(existing ...string) *memStore {
	s := &memStore{files: make(map[string][]byte)}
	for _, name := range existing {
		s.files[name] = []byte("existing")
	}
	return s
}

func (s *memStore) Exists(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[name]
	return ok, nil
}

func (s *memStore) Write(_ context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = append([]byte(nil), data...)
	return nil
}

func (s *memStore) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	return data, ok
}

// pagedChannel serves pages of image blocks and then an empty page.
func pagedChannel(pages ...[]string) *mock.ChannelService {
	return &mock.ChannelService{
		FetchPageFn: func(_ context.Context, _ string, n int) (*arenadl.ContentPage, error) {
			page := &arenadl.ContentPage{Number: n}
			if n > len(pages) {
				return page, nil
			}
			for i, u := range pages[n-1] {
				page.Blocks = append(page.Blocks, &arenadl.ImageBlock{ID: n*1000 + i, SourceURL: u})
			}
			return page, nil
		},
	}
}

func tasksFor(urls ...string) []arenadl.DownloadTask {
	tasks := make([]arenadl.DownloadTask, 0, len(urls))
	for _, u := range urls {
		task, err := arenadl.NewDownloadTask(u)
		if err != nil {
			panic(err)
		}
		tasks = append(tasks, task)
	}
	return tasks
}
