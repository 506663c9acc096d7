// Package contacts is the address book service: user accounts with email
// confirmation and JWT sessions, and the private contact lists they own.
//
// Subpackages:
//   - app: process wiring and lifecycle
//   - api/httpapi: JSON HTTP handlers
//   - auth: password hashing, tokens, and current-user resolution
//   - avatar: gravatar defaults and image CDN uploads
//   - cache: user cache backends
//   - contact: contact domain model and birthday rules
//   - mail: confirmation email rendering and delivery
//   - ratelimit: per-client request limiting
//   - storage: persistence interfaces and the SQL implementation
//   - user: user domain model and signup validation
package contacts
