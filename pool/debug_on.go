//go:build objpooldebug

package pool

const debugInvariants = true
