// Package service implements Grindboard's application logic on top of the
// store interfaces: task CRUD, the fractional ordering engine, the tag merge
// engine, and user registration and login.
//
// Every mutating operation runs in a single transaction. Expected conditions
// surface as store or service sentinel errors; unexpected failures are wrapped
// in TaskServiceError, TagServiceError or UserServiceError, all of which
// unwrap to the underlying cause.
package service
