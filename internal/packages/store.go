package packages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	// SQLite driver (pure Go, no CGO required)
	_ "modernc.org/sqlite"

	"github.com/funvibe/canvasrt/internal/ast"
	"github.com/funvibe/canvasrt/internal/treecodec"
)

// ErrNotFound is returned when a function is not in the catalog.
var ErrNotFound = errors.New("package function not found")

// Store is the persistent package catalog. Function bodies are stored in
// their treecodec YAML form.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates the catalog database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating catalog directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening package catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to package catalog: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating package catalog schema: %w", err)
	}
	return s, nil
}

func (s *Store) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS package_functions (
			owner TEXT NOT NULL,
			modules TEXT NOT NULL,
			name TEXT NOT NULL,
			version INTEGER NOT NULL,
			deprecated INTEGER NOT NULL DEFAULT 0,
			definition TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (owner, modules, name, version)
		);

		CREATE INDEX IF NOT EXISTS idx_package_functions_owner ON package_functions(owner);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *Store) Path() string { return s.path }

// Save inserts or replaces a package function.
func (s *Store) Save(ctx context.Context, def *ast.FunctionDefinition) error {
	if def.Name.Kind != ast.PackageFn {
		return fmt.Errorf("%s is not a package function name", def.Name)
	}
	data, err := treecodec.MarshalFunction(def)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", def.Name, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO package_functions (owner, modules, name, version, deprecated, definition)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner, modules, name, version) DO UPDATE SET
			deprecated = excluded.deprecated,
			definition = excluded.definition,
			updated_at = CURRENT_TIMESTAMP`,
		def.Name.Owner, strings.Join(def.Name.Modules, "."), def.Name.Function, def.Name.Version,
		def.Deprecated, string(data))
	if err != nil {
		return fmt.Errorf("saving %s: %w", def.Name, err)
	}
	return nil
}

// Get reads one function from the catalog.
func (s *Store) Get(ctx context.Context, name ast.FQFnName) (*ast.FunctionDefinition, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `
		SELECT definition FROM package_functions
		WHERE owner = ? AND modules = ? AND name = ? AND version = ?`,
		name.Owner, strings.Join(name.Modules, "."), name.Function, name.Version,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return treecodec.UnmarshalFunction([]byte(data))
}

// Delete removes a function. Deleting a missing function is ErrNotFound.
func (s *Store) Delete(ctx context.Context, name ast.FQFnName) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM package_functions
		WHERE owner = ? AND modules = ? AND name = ? AND version = ?`,
		name.Owner, strings.Join(name.Modules, "."), name.Function, name.Version)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return nil
}

// Load reads the whole catalog into a Registry, so evaluation never
// touches the database.
func (s *Store) Load(ctx context.Context) (*Registry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT definition FROM package_functions
		ORDER BY owner, modules, name, version`)
	if err != nil {
		return nil, fmt.Errorf("querying package catalog: %w", err)
	}
	defer rows.Close()

	reg := NewRegistry()
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scanning package function: %w", err)
		}
		def, err := treecodec.UnmarshalFunction([]byte(data))
		if err != nil {
			return nil, fmt.Errorf("decoding package function: %w", err)
		}
		if err := reg.Add(def); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading package catalog: %w", err)
	}
	return reg, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
