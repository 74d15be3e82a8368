// Package rest implements the driven API ports against the Studia
// backend over HTTP. One Client carries the base URL, the bearer token
// and a token-bucket rate limiter; every endpoint group (auth,
// materials, progress, quiz, admin) is a thin wrapper over it.
package rest
