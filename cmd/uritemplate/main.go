// Command uritemplate expands URI templates, extracts variables from URIs and
// routes URIs to the most specific template.
//
// Usage:
//
//	uritemplate expand -t '/users/{id}{?q}' --var id=1 --var q=go
//	uritemplate extract -t '/users/{id}{?q}' '/users/1?q=go'
//	uritemplate route -c routes.yaml '/users/1'
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
