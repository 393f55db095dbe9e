//go:build !debug

package dither

const debugAssertions = false
