// Comando erpctl: tareas operativas (migraciones, importación de tasas, numeración).
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// .env es opcional; las variables del entorno tienen prioridad.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
