// Package scanner discovers resource directories under the configured
// resource containers and loads each one's manifest and descriptor.
//
// A resource directory is an immediate subdirectory of a container holding
// a package.json and a built entry artifact under build/ or dist/.
package scanner
