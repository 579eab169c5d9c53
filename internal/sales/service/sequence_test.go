package service

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/saurabhwebdev/openpos/internal/sales/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNextSequence_ConcurrentIssuesAreDistinct(t *testing.T) {
	// file-backed database so the goroutines contend on the real sqlite
	// lock; a private in-memory database would give each connection its
	// own copy
	dsn := filepath.Join(t.TempDir(), "seq.db") + "?_pragma=busy_timeout(10000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.InvoiceSequence{}))

	const workers = 16
	tenantID := snowflake.ID(7)

	var mu sync.Mutex
	seen := make(map[int64]bool, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.Transaction(func(tx *gorm.DB) error {
				seq, err := nextSequence(context.Background(), tx, tenantID)
				if err != nil {
					return err
				}
				mu.Lock()
				seen[seq] = true
				mu.Unlock()
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// every issued value is distinct and the series has no holes
	require.Len(t, seen, workers)
	for seq := int64(1); seq <= workers; seq++ {
		assert.True(t, seen[seq], "sequence %d was never issued", seq)
	}

	var row domain.InvoiceSequence
	require.NoError(t, db.First(&row, "tenant_id = ?", tenantID).Error)
	assert.EqualValues(t, workers, row.LastSequence)
}
