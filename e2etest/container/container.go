package container

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/shekel-labs/shekel-settlement/pkg"
)

const (
	mongoContainerName    = "shekel-e2e-mongo"
	rabbitMQContainerName = "shekel-e2e-rabbitmq"

	RabbitMQUser     = "user"
	RabbitMQPassword = "password"
)

// Manager is a wrapper around all Docker instances, and the Docker API.
// It provides utilities to run and interact with all Docker containers used within e2e testing.
type Manager struct {
	cfg       ImageConfig
	pool      *dockertest.Pool
	resources map[string]*dockertest.Resource
}

// NewManager creates a new Manager instance and initializes
// all Docker specific utilities. Returns an error if initialization fails.
func NewManager(t *testing.T) (*Manager, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, err
	}
	pool.MaxWait = 2 * time.Minute

	return &Manager{
		cfg:       NewImageConfig(),
		pool:      pool,
		resources: make(map[string]*dockertest.Resource),
	}, nil
}

// RunMongoResource starts mongodb as a single node replica set and returns
// its connection string once the node is primary.
func (m *Manager) RunMongoResource(t *testing.T) (string, error) {
	resource, err := m.run(mongoContainerName, &dockertest.RunOptions{
		Repository: m.cfg.MongoRepository,
		Tag:        m.cfg.MongoVersion,
		Cmd:        []string{"--replSet", "rs0", "--bind_ip_all"},
	})
	if err != nil {
		return "", err
	}

	address := fmt.Sprintf("mongodb://localhost:%s/?directConnection=true", resource.GetPort("27017/tcp"))
	if err := m.pool.Retry(func() error { return initiateReplicaSet(address) }); err != nil {
		return "", fmt.Errorf("mongo did not become primary: %w", err)
	}

	return address, nil
}

// RunRabbitMQResource starts a broker and returns its host:port once it
// accepts connections.
func (m *Manager) RunRabbitMQResource(t *testing.T) (string, error) {
	resource, err := m.run(rabbitMQContainerName, &dockertest.RunOptions{
		Repository: m.cfg.RabbitMQRepository,
		Tag:        m.cfg.RabbitMQVersion,
		Env: []string{
			"RABBITMQ_DEFAULT_USER=" + RabbitMQUser,
			"RABBITMQ_DEFAULT_PASS=" + RabbitMQPassword,
		},
	})
	if err != nil {
		return "", err
	}

	hostPort := "localhost:" + resource.GetPort("5672/tcp")
	err = m.pool.Retry(func() error {
		conn, err := amqp.Dial(fmt.Sprintf("amqp://%s:%s@%s/", RabbitMQUser, RabbitMQPassword, hostPort))
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if err != nil {
		return "", fmt.Errorf("rabbitmq did not start: %w", err)
	}

	return hostPort, nil
}

func (m *Manager) run(name string, opts *dockertest.RunOptions) (*dockertest.Resource, error) {
	// a previous run may have left a container with the same name behind
	opts.Name = name + "-" + pkg.RandString(4)

	resource, err := m.pool.RunWithOptions(opts, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", name, err)
	}
	m.resources[name] = resource
	return resource, nil
}

// ClearResources removes all outstanding Docker resources created by the Manager.
func (m *Manager) ClearResources(t *testing.T) {
	for name, resource := range m.resources {
		require.NoError(t, m.pool.Purge(resource), name)
	}
	m.resources = make(map[string]*dockertest.Resource)
}

func initiateReplicaSet(address string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(address))
	if err != nil {
		return err
	}
	defer client.Disconnect(ctx) //nolint:errcheck

	err = client.Database("admin").RunCommand(ctx, bson.D{{Key: "replSetInitiate", Value: bson.D{}}}).Err()
	var cmdErr mongo.CommandError
	// AlreadyInitialized
	if err != nil && !(errors.As(err, &cmdErr) && cmdErr.Code == 23) {
		return err
	}

	return client.Ping(ctx, readpref.Primary())
}
