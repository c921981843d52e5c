//go:build windows

package main

func lowerPriority() error {
	return nil
}
