// Package util holds small helpers shared by the configuration and
// component packages.
package util
