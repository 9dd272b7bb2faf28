//go:build !rawvecdebug

package ut

const debugDefault = false
