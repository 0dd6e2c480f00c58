//go:build e2e

package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shekel-labs/shekel-settlement/e2etest/container"
	"github.com/shekel-labs/shekel-settlement/internal/api"
	"github.com/shekel-labs/shekel-settlement/internal/authority"
	"github.com/shekel-labs/shekel-settlement/internal/config"
	"github.com/shekel-labs/shekel-settlement/internal/db"
	"github.com/shekel-labs/shekel-settlement/internal/db/model"
	"github.com/shekel-labs/shekel-settlement/internal/queue"
	"github.com/shekel-labs/shekel-settlement/internal/services"
	"github.com/shekel-labs/shekel-settlement/internal/types"
	"github.com/shekel-labs/shekel-settlement/pkg"
)

var (
	eventuallyWaitTimeOut = 40 * time.Second
	eventuallyPollTime    = 1 * time.Second
)

const (
	operatorKey = "8FXRKgS2nDJ1axRRTvdgkQudUsBZZ5gKnp4zF1kK6vMw"
	programKey  = "EcDwM6SLq81xpKS1ykf7UGjjyE84KJvjmAzWmLwy9tJx"
)

type TestManager struct {
	Config        *config.Config
	Authority     *authority.Authority
	DbClient      *db.Database
	Service       *services.Service
	Server        *httptest.Server
	QueueManager  *queue.QueueManager
	SettlementsCh <-chan amqp.Delivery

	manager      *container.Manager
	consumerConn *amqp.Connection
}

// StartManager runs mongo and rabbitmq, then wires the full service stack
// against them behind an httptest server.
func StartManager(t *testing.T) *TestManager {
	manager, err := container.NewManager(t)
	require.NoError(t, err)

	mongoAddress, err := manager.RunMongoResource(t)
	require.NoError(t, err)
	rabbitAddress, err := manager.RunRabbitMQResource(t)
	require.NoError(t, err)

	cfg := DefaultSettlementConfig()
	cfg.Db.Address = mongoAddress
	cfg.Queue.Url = rabbitAddress
	require.NoError(t, cfg.Validate())

	ctx := t.Context()
	require.NoError(t, model.Setup(ctx, &cfg.Db))

	dbClient, err := db.New(ctx, cfg.Db)
	require.NoError(t, err)

	auth, err := authority.New(cfg.Operator.ProgramAddress())
	require.NoError(t, err)

	qm, err := queue.NewQueueManager(cfg.Queue, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, qm.Start())

	service := services.NewService(cfg, db.NewDbWithMetrics(dbClient), auth, qm)
	server := httptest.NewServer(api.NewRouter(
		api.NewHandler(service),
		api.NewRateLimiter(cfg.Server.RateLimitPerSecond, cfg.Server.RateLimitBurst),
	))

	consumerConn, deliveries := consumeQueue(t, cfg.Queue)

	return &TestManager{
		Config:        cfg,
		Authority:     auth,
		DbClient:      dbClient,
		Service:       service,
		Server:        server,
		QueueManager:  qm,
		SettlementsCh: deliveries,
		manager:       manager,
		consumerConn:  consumerConn,
	}
}

func (tm *TestManager) Stop(t *testing.T) {
	tm.Server.Close()
	require.NoError(t, tm.QueueManager.Stop())
	require.NoError(t, tm.consumerConn.Close())
	require.NoError(t, tm.DbClient.Close(context.Background()))
	tm.manager.ClearResources(t)
}

func DefaultSettlementConfig() *config.Config {
	return &config.Config{
		Db: config.DbConfig{
			DbName:  "shekel-e2e",
			Timeout: 10 * time.Second,
		},
		Operator: config.OperatorConfig{
			Address:   operatorKey,
			ProgramID: programKey,
		},
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			Port:         0,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Poller: config.PollerConfig{
			BalancePollingInterval: time.Second,
		},
		Metrics: config.MetricsConfig{
			Host: "127.0.0.1",
			Port: 2112,
		},
		Queue: &config.QueueConfig{
			QueueUser:     container.RabbitMQUser,
			QueuePassword: container.RabbitMQPassword,
			QueueType:     "classic",
			RetryInterval: 200 * time.Millisecond,
		},
	}
}

func consumeQueue(t *testing.T, cfg *config.QueueConfig) (*amqp.Connection, <-chan amqp.Delivery) {
	conn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s/", cfg.QueueUser, cfg.QueuePassword, cfg.Url))
	require.NoError(t, err)

	ch, err := conn.Channel()
	require.NoError(t, err)

	deliveries, err := ch.Consume(cfg.QueueName, "e2e", true, false, false, false, nil)
	require.NoError(t, err)

	return conn, deliveries
}

// Do sends body as json on behalf of signer and decodes the response into out.
func (tm *TestManager) Do(t *testing.T, method, path string, signer types.Address, body, out any) int {
	t.Helper()

	req := newJSONRequest(t, method, tm.Server.URL+path, body)
	req.Header.Set(api.SignerHeader, signer.String())

	resp, err := tm.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (tm *TestManager) Operator() types.Address {
	return tm.Config.Operator.OperatorAddress()
}

// NextSettlementEvent waits for the next published event.
func (tm *TestManager) NextSettlementEvent(t *testing.T) *queue.SettlementEvent {
	t.Helper()

	select {
	case delivery := <-tm.SettlementsCh:
		var ev queue.SettlementEvent
		require.NoError(t, json.Unmarshal(delivery.Body, &ev))
		return &ev
	case <-time.After(eventuallyWaitTimeOut):
		t.Fatal("no settlement event received")
		return nil
	}
}

func newJSONRequest(t *testing.T, method, url string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequestWithContext(t.Context(), method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// CreateAccount provisions a token account with a random address.
func (tm *TestManager) CreateAccount(t *testing.T, owner, asset types.Address, balance uint64) types.Address {
	t.Helper()

	raw, err := pkg.RandomAddressString()
	require.NoError(t, err)
	address := types.MustParseAddress(raw)

	svcErr := tm.Service.CreateTokenAccount(t.Context(), model.NewTokenAccount(address, owner, asset, balance))
	require.Nil(t, svcErr)
	return address
}
