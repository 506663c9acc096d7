// Package auth hashes passwords, issues and verifies JWTs, and resolves the
// account behind a bearer token.
//
// Access and refresh tokens carry a scope claim so one cannot stand in for
// the other. Email verification tokens carry no scope and are only accepted
// by ParseEmailToken.
package auth
