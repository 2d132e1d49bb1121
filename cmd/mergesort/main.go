// Command mergesort runs the hybrid shared-memory + distributed parallel
// merge-sort engine described in this repository's design documents.
package main

import "github.com/hpcsort/mergesort/cmd/mergesort/cmd"

func main() {
	cmd.Execute()
}
