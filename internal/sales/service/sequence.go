package service

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// nextSequence increments the per-tenant invoice counter and returns the new
// value. The increment-and-read is a single upsert so two concurrent sales
// can never observe the same number; the surrounding transaction may still
// roll back, which leaves a gap in the series and that is fine.
func nextSequence(ctx context.Context, tx *gorm.DB, tenantID snowflake.ID) (int64, error) {
	now := time.Now().UTC()

	var seq int64
	err := tx.WithContext(ctx).Raw(
		`INSERT INTO invoice_sequences (tenant_id, last_sequence, updated_at)
		 VALUES (?, 1, ?)
		 ON CONFLICT (tenant_id) DO UPDATE
		 SET last_sequence = invoice_sequences.last_sequence + 1, updated_at = ?
		 RETURNING last_sequence`,
		tenantID, now, now,
	).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// formatInvoiceNumber renders a sequence value with the tenant's prefix,
// zero padded to six digits (INV-000001). Values past 999999 simply grow
// wider.
func formatInvoiceNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s%06d", prefix, seq)
}
