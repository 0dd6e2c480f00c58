package queue

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/shekel-labs/shekel-settlement/internal/config"
)

// QueueClient publishes raw messages to one queue.
type QueueClient interface {
	SendMessage(ctx context.Context, body []byte) error
	Close() error
}

type RabbitMqClient struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	logger     *zap.Logger
}

func NewRabbitMqClient(cfg *config.QueueConfig, logger *zap.Logger) (*RabbitMqClient, error) {
	amqpURL, err := dialURL(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	// publisher confirms make SendMessage report whether the broker took the message
	if err := ch.Confirm(false); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	args := amqp.Table{}
	if cfg.QueueType != "" {
		args["x-queue-type"] = cfg.QueueType
	}
	_, err = ch.QueueDeclare(
		cfg.QueueName,
		true,  // durable
		false, // auto delete
		false, // exclusive
		false, // no wait
		args,
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", cfg.QueueName, err)
	}

	logger.Info("connected to rabbitmq", zap.String("queue", cfg.QueueName))

	return &RabbitMqClient{
		connection: conn,
		channel:    ch,
		queueName:  cfg.QueueName,
		logger:     logger,
	}, nil
}

func (c *RabbitMqClient) SendMessage(ctx context.Context, body []byte) error {
	confirmation, err := c.channel.PublishWithDeferredConfirmWithContext(
		ctx,
		"",          // default exchange
		c.queueName, // routing key
		true,        // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return err
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return fmt.Errorf("message to queue %s was nacked", c.queueName)
	}
	return nil
}

func (c *RabbitMqClient) Close() error {
	if err := c.channel.Close(); err != nil {
		c.logger.Warn("failed to close channel", zap.Error(err))
	}
	return c.connection.Close()
}

func dialURL(cfg *config.QueueConfig) (string, error) {
	var u *url.URL
	if strings.Contains(cfg.Url, "://") {
		parsed, err := url.Parse(cfg.Url)
		if err != nil {
			return "", fmt.Errorf("invalid queue url: %w", err)
		}
		u = parsed
	} else {
		// bare host:port
		u = &url.URL{Scheme: "amqp", Host: cfg.Url}
	}
	u.User = url.UserPassword(cfg.QueueUser, cfg.QueuePassword)
	return u.String(), nil
}
