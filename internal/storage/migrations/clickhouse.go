package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"strings"

	"nuclear-grid-lab/internal/storage/clickhouse"
)

// RunClickhouseMigrations applies all embedded SQL files in lexical order.
// Migrations are expected to be idempotent.
func RunClickhouseMigrations(ctx context.Context, conn *clickhouse.Conn) error {
	files, err := listSQL(ClickhouseFS, "clickhouse")
	if err != nil {
		return fmt.Errorf("read embedded clickhouse migrations: %w", err)
	}

	for _, file := range files {
		data, err := fs.ReadFile(ClickhouseFS, "clickhouse/"+file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			continue
		}
		if err := conn.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}

	return nil
}
