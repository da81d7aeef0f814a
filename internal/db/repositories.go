package db

import "gorm.io/gorm"

type Repositories struct {
	CheckIns *CheckInRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		CheckIns: NewCheckInRepository(database),
	}
}
