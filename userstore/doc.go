// Package userstore provides tokenAuth.UserStore implementations.
//
// [Memory] keeps users in a map and suits tests and single-process demos.
// [Postgres] stores them in a "users" table through database/sql with the
// pgx driver; [Migrate] creates that table from embedded goose migrations.
//
// Both stores assign a random UUID to users created without an id and
// report a taken handle as tokenAuth.ErrDuplicateHandle.
package userstore
