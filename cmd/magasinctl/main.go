// magasinctl tareas de administración fuera del servidor: migraciones, seed,
// alta de usuarios e importación de productos desde CSV.
//
// Uso: go run ./cmd/magasinctl <comando> [flags]
package main

import "github.com/jhoicas/magasin-api/cmd/magasinctl/commands"

func main() {
	commands.Execute()
}
