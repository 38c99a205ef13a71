// Lister kolonnene sammendraget kan vise. Gjør ingen nettverkskall.
package main

import (
	"fmt"

	"github.com/jonmartinstorm/harborsnusern/internal/columns"
)

func main() {
	fmt.Println("Tilgjengelige kolonner:")
	for _, col := range columns.All() {
		fmt.Printf("- %s: %s (%s)\n", col.Key, col.Label, col.Description)
	}
}
