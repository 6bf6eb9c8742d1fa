// Package postgres stores access control policies in PostgreSQL and loads
// them as policy documents using the pgx/v5 driver.
//
// The package keeps a small API surface over battle-tested upstream libraries
// (pgx/v5 for connectivity, goose/v3 for schema migrations) so that callers
// can extend the behaviour where needed.
//
// # Architecture
//
// Four cooperating building blocks:
//
//   - Config – a declarative struct whose fields are populated from
//     ACP_PG_* environment variables via github.com/caarlos0/env. It controls
//     connection pool limits, health-check cadence and the migrations table.
//
//   - Connect – opens a *pgxpool.Pool based on Config, retrying with
//     back-off until the database becomes available.
//
//   - Migrate – applies the embedded goose migrations that create the
//     acp_roles and acp_rules tables, guaranteeing the schema is in place
//     before the first policy load.
//
//   - Source – reads both tables into a policy.Document. Each acp_rules row
//     is one rule; the position column fixes evaluation order within a
//     (role, resource, action) group.
//
// # Usage
//
//	var cfg postgres.Config
//	if err := config.Load(&cfg); err != nil {
//		panic(err)
//	}
//
//	ctx := context.Background()
//	pool, err := postgres.Connect(ctx, cfg)
//	if err != nil {
//		panic(err)
//	}
//	defer pool.Close()
//
//	if err := postgres.Migrate(ctx, pool, cfg, slog.Default()); err != nil {
//		panic(err)
//	}
//
//	src := policy.NewSource(postgres.NewSource(pool), registry)
//	ac, err := accesscontrol.NewFromSource(ctx, src)
//
// # Error Handling
//
// Helpers such as [IsDuplicateKeyError] or [IsForeignKeyViolationError]
// unwrap errors returned by pgx and make classification trivial when writing
// rule rows: a duplicate key means two rules claimed the same position, a
// foreign key violation means a rule referenced an undeclared role.
package postgres
