// classfdr - peptide class FDR filtering for proteomics search results
package main

import (
	"fmt"
	"os"

	"github.com/proteopipe/classfdr/cmd/classfdr/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
