// Package domain contains the core entities of Grindboard (users, tasks, tags
// and auth tokens), their validation rules, and the position arithmetic used to
// keep a user's tasks in a manual order. It has no knowledge of storage or
// transport.
package domain
