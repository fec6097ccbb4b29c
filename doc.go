// Package main provides the entry point for the address book service.
// It runs a Fiber based REST API that lets authenticated users manage their
// contacts and contact groups, including the many-to-many membership between
// them. Persistence is handled by gorm; MySQL, PostgreSQL and SQLite are
// supported as storage engines.
package main
