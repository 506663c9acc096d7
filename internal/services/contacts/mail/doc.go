// Package mail renders and delivers account emails.
//
// Delivery happens off the request path: handlers enqueue messages on a
// Dispatcher whose single worker hands them to a Sender.
package mail
