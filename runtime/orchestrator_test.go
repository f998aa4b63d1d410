package runtime

import (
	"context"
	"log/slog"
	"nutzy-site/domain"
	"nutzy-site/errors"
	"nutzy-site/mocks"
	"nutzy-site/runtime/workers"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOrchestrator_PrimeContinuesAfterFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	blog := mocks.NewMockLoader(ctrl)
	events := mocks.NewMockLoader(ctrl)

	gomock.InOrder(
		blog.EXPECT().Load(gomock.Any()).Return(domain.LoadReport{}, errors.ErrRemoteUnavailable),
		events.EXPECT().Load(gomock.Any()).Return(domain.LoadReport{Loaded: 3, Available: true}, nil),
	)
	blog.EXPECT().Name().Return("blog_posts").AnyTimes()
	events.EXPECT().Name().Return("events").AnyTimes()

	NewOrchestrator(slog.Default(), nil, time.Minute, blog, events).Prime(context.Background())
}

func TestOrchestrator_StartRegistersWorkersAndStops(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	extra := mocks.NewMockWorker(ctrl)

	ran := make(chan struct{})
	extra.EXPECT().Run(gomock.Any()).DoAndReturn(func(ctx context.Context) error {
		close(ran)
		<-ctx.Done()
		return nil
	})

	o := NewOrchestrator(slog.Default(), workers.NewSupervisor(slog.Default()), time.Hour)
	o.Add(extra)
	o.Start(context.Background())

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		req.Fail("extra worker never started")
	}

	stopped := make(chan struct{})
	go func() {
		o.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		req.Fail("orchestrator did not stop")
	}
}

func TestOrchestrator_StopWithoutStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	supervisor := mocks.NewMockISupervisor(ctrl)
	supervisor.EXPECT().Stop()

	NewOrchestrator(slog.Default(), supervisor, time.Minute).Stop()
}
