// Package main provides the entry point of the stockroom API server.
// It serves the inventory and order management records (users, suppliers,
// SKUs, purchase and sales documents, permissions, ...) as JSON over HTTP
// using fiber and gorm, and in production also the pre-built frontend.
package main
