// Generate a typed query API for all tables in the connected database.
package main

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gen"
	"gorm.io/gorm"

	"github.com/sitegrid-labs/sitegrid/dao/model"
)

func main() {
	g := gen.NewGenerator(gen.Config{
		OutPath: "../../dao/query",
		Mode:    gen.WithDefaultQuery | gen.WithQueryInterface,
	})

	// Connect to the database
	password := os.Getenv("PGPASSWORD")
	port := os.Getenv("PGPORT")
	if password == "" || port == "" {
		panic("Please read the README.md file to set the environment variable.")
	}
	dsnPattern := "host=localhost user=postgres password=%s dbname=sitegrid port=%s sslmode=disable TimeZone=UTC"
	dsn := fmt.Sprintf(dsnPattern, password, port)
	db, err := gorm.Open(postgres.Open(dsn))
	if err != nil {
		panic(fmt.Errorf("connect to postgres: %w", err))
	}
	g.UseDB(db)

	g.ApplyBasic(
		model.User{},
		model.UserTenant{},
		model.Tenant{},
		model.Project{},
		model.Task{},
		model.TaskDependency{},
		model.Contact{},
	)

	// Execute the code generation
	g.Execute()
}
