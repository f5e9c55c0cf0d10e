// Package api handles incoming HTTP requests, request validation and response
// formatting for the Grindboard API. Handlers translate HTTP concerns into
// calls on the service layer and map service errors to status codes through
// MapErrorToStatusCode and GetSafeErrorMessage, so raw error text never
// reaches a client.
//
// Routing lives in NewRouter; authentication and trace middleware live in the
// middleware subpackage.
package api
