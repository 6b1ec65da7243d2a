// Package db embeds the SQL schema applied at startup.
package db

import _ "embed"

// Schema is the DDL for the phones, orders and order_items tables.
//
//go:embed schema.sql
var Schema string
