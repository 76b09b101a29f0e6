package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"sort"

	"github.com/jhoicas/tienda-contable/migrations"
)

// Migrate aplica los archivos .sql embebidos en orden de nombre.
// Los scripts son idempotentes (IF NOT EXISTS); se pueden correr en cada arranque.
func Migrate(ctx context.Context, q Querier) ([]string, error) {
	names, err := fs.Glob(migrations.FS, "*.sql")
	if err != nil {
		return nil, fmt.Errorf("listar migraciones: %w", err)
	}
	sort.Strings(names)
	for _, name := range names {
		body, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return nil, fmt.Errorf("leer %s: %w", name, err)
		}
		if _, err := q.Exec(ctx, string(body)); err != nil {
			return nil, fmt.Errorf("aplicar %s: %w", name, err)
		}
	}
	return names, nil
}
