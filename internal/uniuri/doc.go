// Package uniuri generates random strings over a fixed alphabet from
// crypto/rand without modulo bias. API token keys are built with it.
package uniuri
