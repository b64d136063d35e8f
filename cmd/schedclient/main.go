// Package main is the entry point for the schedclient CLI.
package main

func main() {
	Execute()
}
