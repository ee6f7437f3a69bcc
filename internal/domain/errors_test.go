package domain

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	t.Run("sentinel matching", func(t *testing.T) {
		err := NewNotFoundError("get ticket", sql.ErrNoRows)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NotErrorIs(t, err, ErrStorage)
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("kind survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("failed to file report: %w", NewStorageError("insert ticket", errors.New("disk I/O error")))

		assert.ErrorIs(t, err, ErrStorage)
		assert.Equal(t, KindStorage, KindOf(err))
		assert.Contains(t, err.Error(), "disk I/O error")
	})

	t.Run("plain errors have no kind", func(t *testing.T) {
		assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
		assert.Equal(t, KindUnknown, KindOf(nil))
	})

	t.Run("message without cause", func(t *testing.T) {
		err := &Error{Kind: KindValidation, Op: "list tickets"}
		assert.Equal(t, "list tickets: validation", err.Error())
	})
}
