package core

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithSession runs work inside a store session which is ended on every
// exit path, panics included. The context passed to work carries the
// session and must be used for every store call made by work.
func WithSession(
	ctx context.Context,
	client *mongo.Client,
	work func(context.Context) error,
) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("session panicked with: %v", r)
		}
	}()

	return client.UseSession(ctx, func(sc mongo.SessionContext) error {
		return work(sc)
	})
}
