// Versioned schema migrations. Each entry is append-only; editing a
// released migration breaks checksums on deployed databases.
package migrations

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/sitegrid-labs/sitegrid/dao/model"
)

func all() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202506010001_base_schema",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(
					&model.Tenant{},
					&model.User{},
					&model.UserTenant{},
					&model.Project{},
					&model.Contact{},
					&model.Task{},
					&model.TaskDependency{},
				)
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Migrator().DropTable(
					"task_dependencies", "tasks", "contacts",
					"projects", "user_tenants", "users", "tenants",
				)
			},
		},
		{
			ID: "202507150001_task_dependency_unique_edge",
			Migrate: func(tx *gorm.DB) error {
				// Older installs could hold duplicate edges; collapse them
				// before the unique index lands via AutoMigrate.
				return tx.Exec(`
					DELETE FROM task_dependencies a
					USING task_dependencies b
					WHERE a.id > b.id
					  AND a.task_id = b.task_id
					  AND a.prerequisite_id = b.prerequisite_id`).Error
			},
			Rollback: func(_ *gorm.DB) error { return nil },
		},
	}
}

// Run applies all pending migrations.
func Run(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, all())
	if err := m.Migrate(); err != nil {
		return err
	}
	klog.Info("migrations up to date")
	return nil
}
