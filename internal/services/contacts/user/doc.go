// Package user defines account records and signup validation.
package user
