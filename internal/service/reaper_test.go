package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportdesigner/internal/service"
)

func TestIdleReaper_BadSchedule(t *testing.T) {
	svc := service.NewDesignerService(&service.MockEmitter{}, 0)
	_, err := service.NewIdleReaper(context.Background(), svc, "every tuesday", time.Hour)
	assert.Error(t, err)
}

func TestIdleReaper_Sweeps(t *testing.T) {
	ctx := context.Background()
	emitter := &service.MockEmitter{}
	svc := service.NewDesignerService(emitter, 0)

	now := time.Now()
	svc.SetClock(func() time.Time { return now })
	_, err := svc.CreateReport(ctx, "forgotten")
	require.NoError(t, err)
	// everything looks a day old from here on
	svc.SetClock(func() time.Time { return now.Add(24 * time.Hour) })

	r, err := service.NewIdleReaper(ctx, svc, "@every 1s", time.Hour)
	require.NoError(t, err)
	r.Start()
	defer r.Stop()

	require.Eventually(t, func() bool {
		return len(svc.ListReports()) == 0
	}, 5*time.Second, 50*time.Millisecond)
	assert.Len(t, emitter.Named(service.EventReportEvicted), 1)
}

func TestIdleReaper_SetTTL(t *testing.T) {
	svc := service.NewDesignerService(&service.MockEmitter{}, 0)
	r, err := service.NewIdleReaper(context.Background(), svc, "@every 10m", time.Hour)
	require.NoError(t, err)

	r.SetTTL(5 * time.Minute)
	assert.Equal(t, 5*time.Minute, r.TTL())

	r.Start()
	r.Stop()
}
