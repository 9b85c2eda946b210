// Package wines persists wine records.
//
// Two backends share one Repository contract: SQLiteRepository for the
// local single-user cellar and PostgresRepository for a cellar hosted on a
// shared database. Both encode the record through the same flat row form
// (see row.go), so a record written by one decodes identically in the other.
package wines
