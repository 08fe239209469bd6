package trigger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang-stock-digest/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTriggerService_InvalidSpec(t *testing.T) {
	_, err := NewTriggerService("http://localhost", "every now and then", "s", time.Second, nil, logger.NewNop())
	assert.Error(t, err)
}

func TestFire(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		if r.Header.Get("Authorization") != "Bearer top-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"No users scheduled","time":"08:00","day":"friday","usersProcessed":0}`))
	}))
	defer srv.Close()

	svc, err := NewTriggerService(srv.URL, "*/15 * * * *", "top-secret", time.Second, srv.Client(), logger.NewNop())
	require.NoError(t, err)

	report, err := svc.Fire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "No users scheduled", report.Message)
	assert.Equal(t, "friday", report.Day)
	assert.Zero(t, report.UsersProcessed)

	bad, err := NewTriggerService(srv.URL, "*/15 * * * *", "wrong", time.Second, srv.Client(), logger.NewNop())
	require.NoError(t, err)
	_, err = bad.Fire(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestStart_FiresOnSchedule(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"message":"Cron job completed","time":"08:00","day":"friday","usersProcessed":1}`))
	}))
	defer srv.Close()

	svc, err := NewTriggerService(srv.URL, "@every 1s", "s", time.Second, srv.Client(), logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 2 }, 5*time.Second, 20*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("trigger did not stop")
	}
}
