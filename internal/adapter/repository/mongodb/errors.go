package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/listing-rest/internal/listing/domain"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// classify maps a driver error onto the domain taxonomy: anything that means
// the store could not be reached is ErrStoreUnavailable, the rest is
// ErrQueryFailed. The driver error stays in the message for logs.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUnavailable(err) {
		return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrQueryFailed, op, err)
}

func isUnavailable(err error) bool {
	if errors.Is(err, domain.ErrStoreUnavailable) ||
		errors.Is(err, mongo.ErrClientDisconnected) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return true
	}
	var selErr topology.ServerSelectionError
	if errors.As(err, &selErr) {
		return true
	}
	var connErr topology.ConnectionError
	return errors.As(err, &connErr)
}
