// Package handlers provides the celerity-docs HTTP handlers: the plain-text
// page route, search API and monitoring endpoints.
package handlers
