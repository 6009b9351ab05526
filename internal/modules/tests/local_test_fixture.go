package tests

import (
	"context"
	"fmt"
	"net"
	"os"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const mongoPort = nat.Port("27017/tcp")

// LocalTestFixture runs a disposable MongoDB container. With
// SKIP_INFRASTRUCTURE=true nothing is started and callers fall back to an
// already running store.
type LocalTestFixture struct {
	image     string
	container testcontainers.Container
	mongoURI  string
}

func NewLocalTestFixture(image string) LocalTestFixture {
	return LocalTestFixture{image: image}
}

func (f *LocalTestFixture) Start(ctx context.Context) (err error) {
	if skip := os.Getenv("SKIP_INFRASTRUCTURE"); skip == "true" {
		return nil
	}

	// testcontainers panics when no docker host can be found.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to start infrastructure: %v", r)
		}
	}()

	request := testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        f.image,
			ExposedPorts: []string{string(mongoPort)},
			WaitingFor: wait.ForAll(
				wait.ForLog("Waiting for connections"),
				wait.ForListeningPort(mongoPort),
			),
		},
		Started: true,
	}

	container, err := testcontainers.GenericContainer(ctx, request)
	if err != nil {
		return err
	}
	f.container = container

	host, err := container.Host(ctx)
	if err != nil {
		return err
	}

	port, err := container.MappedPort(ctx, mongoPort)
	if err != nil {
		return err
	}

	f.mongoURI = fmt.Sprintf("mongodb://%s", net.JoinHostPort(host, port.Port()))
	return nil
}

// MongoURI is the address of the started container, or fallback when the
// infrastructure was skipped.
func (f *LocalTestFixture) MongoURI(fallback string) string {
	if f.mongoURI == "" {
		return fallback
	}

	return f.mongoURI
}

func (f *LocalTestFixture) Stop(ctx context.Context) error {
	if f.container == nil {
		return nil
	}

	return f.container.Terminate(ctx)
}
