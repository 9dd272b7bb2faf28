//go:build rawvecdebug

package ut

const debugDefault = true
