package models

import "gorm.io/gorm"

// Migrate creates or updates every table the application uses. The
// explicit join table is registered first so project skill associations
// go through SkillToProject rather than a gorm-generated shadow table.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Project{}, "Skills", &SkillToProject{}); err != nil {
		return err
	}

	return db.AutoMigrate(
		&User{},
		&Role{},
		&Skill{},
		&Work{},
		&Education{},
		&Project{},
		&Upload{},
	)
}
