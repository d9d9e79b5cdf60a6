// Package validation contains the logic for binding and validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields) defined in struct tags, supports custom
// errors for rules tags cannot express, and extracts validation
// errors into a format the client can understand
package validation
