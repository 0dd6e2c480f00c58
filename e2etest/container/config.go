package container

import "github.com/shekel-labs/shekel-settlement/pkg"

// ImageConfig contains all images and their respective tags
// needed for running e2e tests.
type ImageConfig struct {
	MongoRepository    string
	MongoVersion       string
	RabbitMQRepository string
	RabbitMQVersion    string
}

const (
	dockerMongoRepository    = "mongo"
	dockerMongoVersionTag    = "7.0.5"
	dockerRabbitMQRepository = "rabbitmq"
	dockerRabbitMQVersionTag = "3.13"
)

// NewImageConfig returns ImageConfig needed for running e2e test.
// Tags can be overridden from the environment.
func NewImageConfig() ImageConfig {
	return ImageConfig{
		MongoRepository:    dockerMongoRepository,
		MongoVersion:       pkg.Getenv("MONGO_IMAGE_TAG", dockerMongoVersionTag),
		RabbitMQRepository: dockerRabbitMQRepository,
		RabbitMQVersion:    pkg.Getenv("RABBITMQ_IMAGE_TAG", dockerRabbitMQVersionTag),
	}
}
