// Package cli is responsible for parsing command-line arguments, merging an
// optional config file underneath them, and handling process-level concerns
// like exit codes. It translates flags into the application's Config.
package cli
