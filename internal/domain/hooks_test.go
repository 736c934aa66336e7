package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"stockbook/internal/domain/store"
)

func TestHookRegistry_RunsInOrderAndStops(t *testing.T) {
	r := NewHookRegistry[*[]string]()
	stop := errors.New("stop")

	r.OnBeforeCreate(func(ctx context.Context, doc *store.Document, log *[]string) error {
		*log = append(*log, "first")
		return nil
	})
	r.OnBeforeCreate(func(ctx context.Context, doc *store.Document, log *[]string) error {
		*log = append(*log, "second")
		return stop
	})
	r.OnBeforeCreate(func(ctx context.Context, doc *store.Document, log *[]string) error {
		*log = append(*log, "third")
		return nil
	})

	var log []string
	err := r.Run(context.Background(), BeforeCreate, store.New(), &log)

	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []string{"first", "second"}, log)
	assert.NoError(t, r.Run(context.Background(), BeforeDelete, store.New(), &log))
}
