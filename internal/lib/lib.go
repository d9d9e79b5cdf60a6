// Packages lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains shared utilities and background job processing
// (using Redis/Asynq).
package lib
