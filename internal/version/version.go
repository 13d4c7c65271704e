// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Distance view, graphical window host, catalog server
// 0.2.0 - Planet detail view, press-edge click handling, field-name normalization
// 0.1.0 - Initial release: menu, scale view, credits, terminal host
