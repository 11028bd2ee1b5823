package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type captureWriter struct {
	lines []string
}

func (c *captureWriter) Printf(format string, args ...interface{}) {
	c.lines = append(c.lines, fmt.Sprintf(format, args...))
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	w := &captureWriter{}
	l := newGormLogger(w)
	query := func() (string, int64) { return "SELECT * FROM shipments", 0 }

	l.Trace(context.Background(), time.Now(), query, gorm.ErrRecordNotFound)
	assert.Empty(t, w.lines)

	l.Trace(context.Background(), time.Now(), query, errors.New("no such table: shipments"))
	if assert.Len(t, w.lines, 1) {
		assert.True(t, strings.Contains(w.lines[0], "no such table"))
	}
}

func TestOpenSQLiteFirstMissingRowIsQuiet(t *testing.T) {
	db, err := OpenSQLite("file::memory:")
	if !assert.NoError(t, err) {
		return
	}
	w := &captureWriter{}
	db.Logger = newGormLogger(w)

	type marker struct{ ID uint }
	assert.NoError(t, db.AutoMigrate(&marker{}))
	var row marker
	assert.ErrorIs(t, db.First(&row).Error, gorm.ErrRecordNotFound)
	assert.Empty(t, w.lines)
}
