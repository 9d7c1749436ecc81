// Package ntest contains helpers shared by tests across the module.
package ntest
