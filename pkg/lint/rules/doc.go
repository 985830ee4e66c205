// Package rules provides the built-in lint rules. Importing it registers them.
package rules
