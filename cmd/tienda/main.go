// Command tienda tareas de operación: migraciones, carga del catálogo,
// tokens de acceso y estado de cuenta por consola.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
