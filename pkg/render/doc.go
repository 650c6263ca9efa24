// Package render turns an expanded ruleset into vendor configuration text
// using embedded templates, one output per device and direction.
package render
