package scope

import "gorm.io/gorm"

// ByEmployee narrows a query to one employee's rows.
func ByEmployee(employeeID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

// ByYear narrows a query to one calendar year.
func ByYear(year int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("year = ?", year)
	}
}
