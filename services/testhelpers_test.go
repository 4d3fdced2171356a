package services

import (
	"sync"
	"testing"

	"bmicalc/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *GormProfileStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // every new connection would get its own empty :memory: database
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewGormProfileStore(db)
}

type fakeConn struct {
	mu     sync.Mutex
	sent   []any
	pings  int
	closed bool
	err    error
}

func (c *fakeConn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, v)
	return nil
}

func (c *fakeConn) WriteMessage(int, []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pings++
	return c.err
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) commands() []PageCommand {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []PageCommand
	for _, v := range c.sent {
		if cmd, ok := v.(PageCommand); ok {
			out = append(out, cmd)
		}
	}
	return out
}
