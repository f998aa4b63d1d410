package workers

import (
	"context"
	"log/slog"
	"nutzy-site/domain"
	"nutzy-site/errors"
	"nutzy-site/mocks"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRefreshWorker_RefreshAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	blog := mocks.NewMockLoader(ctrl)
	events := mocks.NewMockLoader(ctrl)
	blog.EXPECT().Name().Return("blog_posts").AnyTimes()
	events.EXPECT().Name().Return("events").AnyTimes()

	t.Run("should keep refreshing after a failing loader", func(t *testing.T) {
		gomock.InOrder(
			blog.EXPECT().Load(gomock.Any()).Return(domain.LoadReport{}, errors.ErrRemoteUnavailable),
			events.EXPECT().Load(gomock.Any()).Return(domain.LoadReport{Collection: "events", Loaded: 3}, nil),
		)

		NewRefreshWorker(slog.Default(), time.Minute, blog, events).RefreshAll(context.Background())
	})

	t.Run("should not load with a canceled context", func(t *testing.T) {
		blog.EXPECT().Load(gomock.Any()).Times(0)
		events.EXPECT().Load(gomock.Any()).Times(0)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		NewRefreshWorker(slog.Default(), time.Minute, blog, events).RefreshAll(ctx)
	})
}

func TestRefreshWorker_RunReloadsOnTick(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockLoader(ctrl)
	loader.EXPECT().Name().Return("blog_posts").AnyTimes()

	loaded := make(chan struct{}, 10)
	loader.EXPECT().
		Load(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (domain.LoadReport, error) {
			loaded <- struct{}{}
			return domain.LoadReport{Collection: "blog_posts"}, nil
		}).
		MinTimes(2)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- NewRefreshWorker(slog.Default(), 20*time.Millisecond, loader).Run(ctx) }()

	for range 2 {
		select {
		case <-loaded:
		case <-time.After(time.Second):
			req.Fail("expected a reload")
		}
	}
	cancel()
	req.NoError(<-done)
}
