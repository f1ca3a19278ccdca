// Command quantcalc evaluates dimension-checked vector arithmetic from the
// command line.
//
//	quantcalc plus 1,2,3 4,5,6 --quantity length --unit km --display-unit m
//	quantcalc diff 10,20 5,5 --quantity time --unit min
//	quantcalc encode 0,1.5,0 --quantity mass --storage sparse --compression zstd
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
