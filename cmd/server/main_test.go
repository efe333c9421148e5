package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/fadilmartias/job-portal/internal/cache"
	"github.com/fadilmartias/job-portal/internal/config"
	"github.com/fadilmartias/job-portal/internal/database"
	"github.com/fadilmartias/job-portal/internal/repository"
	"github.com/fadilmartias/job-portal/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// silentListener accepts connections and never writes to them, like a
// database host that completes the TCP handshake and then hangs.
func silentListener(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})
	return ln
}

func freePort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return strconv.Itoa(port)
}

func TestServerAnswersHealthWhileDatabaseHangs(t *testing.T) {
	db := silentListener(t)
	dbPort := db.Addr().(*net.TCPAddr).Port
	port := freePort(t)

	appConfig := &config.AppConfig{
		Name:            "job-portal-test",
		Env:             "test",
		Port:            port,
		AllowedOrigins:  config.DefaultAllowedOrigins,
		RateLimitMax:    50,
		RateLimitWindow: time.Minute,
	}
	dbConfig := &config.DBConfig{
		Host:             "127.0.0.1",
		Port:             strconv.Itoa(dbPort),
		User:             "postgres",
		Name:             "job_portal",
		SSLMode:          "disable",
		TimeZone:         "UTC",
		MaxOpenConns:     2,
		MaxIdleConns:     1,
		ConnMaxLifetime:  time.Minute,
		ConnectTimeout:   time.Minute,
		StatementTimeout: time.Minute,
		SchemaTimeout:    time.Minute,
	}

	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(appConfig, dbConfig, &config.TelemetryConfig{ServiceName: "job-portal-test"}, zap.NewNop()),
		fx.Provide(
			database.Open,
			repository.NewJobRepository,
			asJobRepositoryInterface,
			func() cache.Cache { return cache.Noop{} },
			usecase.NewJobUsecase,
			newJobHandler,
			newFiberApp,
		),
		fx.Invoke(registerServer),
	)

	started := time.Now()
	app.RequireStart()
	defer app.RequireStop()
	assert.Less(t, time.Since(started), 5*time.Second)

	client := &http.Client{Timeout: time.Second}
	url := "http://127.0.0.1:" + port + "/api/health"
	assert.Eventually(t, func() bool {
		resp, err := client.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)
}

type blockingSchema struct {
	done chan struct{}
}

func (b *blockingSchema) EnsureSchema(ctx context.Context) error {
	defer close(b.done)
	<-ctx.Done()
	return ctx.Err()
}

func TestInitSchemaStopsAtDeadline(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	repo := &blockingSchema{done: make(chan struct{})}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	initSchema(ctx, cancel, repo, zap.New(core))

	<-repo.done
	entries := logs.FilterMessage("database initialization failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, context.DeadlineExceeded.Error(), entries[0].ContextMap()["error"])
}

type stubSchema struct{ err error }

func (s stubSchema) EnsureSchema(context.Context) error { return s.err }

func TestInitSchemaLogsOutcome(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	ctx, cancel := context.WithCancel(context.Background())
	initSchema(ctx, cancel, stubSchema{}, logger)
	assert.Equal(t, 1, logs.FilterMessage("database initialized").Len())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)

	ctx, cancel = context.WithCancel(context.Background())
	initSchema(ctx, cancel, stubSchema{err: errors.New("connection refused")}, logger)
	assert.Equal(t, 1, logs.FilterMessage("database initialization failed").Len())
}
