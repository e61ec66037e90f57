// Package api is the HTTP client of the oposiciones backend.
//
// Every request carries the stored access token. When the backend answers
// 401 and a session exists, the first failing request renews the token
// through /refreshOpo while the others queue behind it; all of them are
// replayed once with the new token, or all fail with the same
// *RenewalError and the session is dropped.
package api
