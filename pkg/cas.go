package pkg

import (
	"context"
	"errors"
	"fmt"
)

// ErrVersionConflict is returned by a compare-and-swap write when the stored
// version no longer matches the one that was read.
var ErrVersionConflict = errors.New("version conflict")

// RetryOnConflict runs op until it returns something other than ErrVersionConflict,
// at most attempts times. op must re-read the state it mutates on every call.
func RetryOnConflict(ctx context.Context, attempts int, op func(ctx context.Context) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = op(ctx); !errors.Is(err, ErrVersionConflict) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", attempts, err)
}
