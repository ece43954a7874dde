// SPDX-License-Identifier: MIT

// Command genomectl builds, inspects, samples and archives genomes in the
// text format.
//
//	genomectl build net.yaml > net.genome
//	genomectl inspect net.genome
//	genomectl sample --count 3 net.genome
//	genomectl archive save mnist net.genome
//	genomectl --config genomectl.yaml --metrics inspect --name mnist
package main

import (
	"os"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}
