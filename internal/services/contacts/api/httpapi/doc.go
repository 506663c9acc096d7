// Package httpapi serves the contacts REST API.
//
// Routes live under /api: auth for account lifecycle, contacts for the
// address book, and users for the caller's profile. Every error is written
// as {"detail": "..."}.
package httpapi
