// Package run defines the closed run options: parallelism, dependency
// ordering and the continue-on-error policy, plus parsers that normalise
// loosely shaped flag values into them.
package run
