package leaderboard

import "context"

// Open returns a Postgres store when dsn is set, else a file store at path
func Open(ctx context.Context, dsn, path string) (Store, error) {
	if dsn == "" {
		return NewFileStore(path), nil
	}
	s, err := OpenPostgres(ctx, dsn)
	if err != nil {
		return nil, err
	}
	return s, nil
}
