// Package permission provides CRUD operations for permission records.
//
// Name and Route are unique, Name, Route and Description must never be empty.
// Both rules are checked before writing and again enforced by the unique
// indexes of the permissions table.
package permission

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/stockroom/stockroom/internal/db/models"
)

var (
	// ErrNotFound is returned when no permission matches the id.
	ErrNotFound = errors.New("permission not found")
	// ErrValidation is returned when a required field is empty.
	ErrValidation = errors.New("permission validation failed")
	// ErrConstraintViolation is returned when name or route is already taken.
	ErrConstraintViolation = errors.New("permission already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Fields holds a partial update. Nil pointers are left untouched.
type Fields struct {
	Name        *string
	Route       *string
	Description *string
}

func validationError(field string) error {
	return errors.WithStack(fmt.Errorf("%w: %s is required", ErrValidation, field))
}

func conflictError(field, value string) error {
	return errors.WithStack(fmt.Errorf("%w: %s %q is already in use", ErrConstraintViolation, field, value))
}

func validate(p *models.Permission) error {
	switch {
	case p.Name == "":
		return validationError("name")
	case p.Route == "":
		return validationError("route")
	case p.Description == "":
		return validationError("description")
	}

	return nil
}

// checkUnique looks for another record holding p's name or route.
func checkUnique(db *gorm.DB, p *models.Permission) error {
	var existing models.Permission

	query := db.Where("(name = ? OR route = ?)", p.Name, p.Route)
	if p.ID != 0 {
		query = query.Where("id <> ?", p.ID)
	}

	result := query.Limit(1).Find(&existing)
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return nil
	}

	if existing.Name == p.Name {
		return conflictError("name", p.Name)
	}

	return conflictError("route", p.Route)
}

// translate maps a unique index violation which raced past checkUnique.
func translate(err error, p *models.Permission) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.WithStack(fmt.Errorf("%w: name %q or route %q is already in use",
			ErrConstraintViolation, p.Name, p.Route))
	}

	return errors.WithStack(err)
}

// GetAll retrieves all permissions in insertion order.
func GetAll(db *gorm.DB) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	permissions := []models.Permission{}
	if result := db.Order("id ASC").Find(&permissions); result.Error != nil {
		return nil, errors.WithStack(result.Error)
	}

	return permissions, nil
}

// GetByID retrieves a permission by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var p models.Permission

	result := db.Where("id = ?", id).Limit(1).Find(&p)
	if result.Error != nil {
		return nil, errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return nil, errors.WithStack(fmt.Errorf("%w: id %d", ErrNotFound, id))
	}

	return &p, nil
}

// Count returns the number of stored permissions.
func Count(db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	if err := db.Model(&models.Permission{}).Count(&count).Error; err != nil {
		return 0, errors.WithStack(err)
	}

	return count, nil
}

// Create validates and stores a new permission.
func Create(db *gorm.DB, name, route, description string) (*models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	p := &models.Permission{
		Name:        strings.TrimSpace(name),
		Route:       strings.TrimSpace(route),
		Description: strings.TrimSpace(description),
	}

	if err := validate(p); err != nil {
		return nil, err
	}

	if err := checkUnique(db, p); err != nil {
		return nil, err
	}

	if err := db.Create(p).Error; err != nil {
		return nil, translate(err, p)
	}

	return p, nil
}

// Update applies the non-nil fields to the permission with the given id.
func Update(db *gorm.DB, id uint64, fields Fields) (*models.Permission, error) {
	p, err := GetByID(db, id)
	if err != nil {
		return nil, err
	}

	if fields.Name != nil {
		p.Name = strings.TrimSpace(*fields.Name)
	}

	if fields.Route != nil {
		p.Route = strings.TrimSpace(*fields.Route)
	}

	if fields.Description != nil {
		p.Description = strings.TrimSpace(*fields.Description)
	}

	if err = validate(p); err != nil {
		return nil, err
	}

	if err = checkUnique(db, p); err != nil {
		return nil, err
	}

	if err = db.Save(p).Error; err != nil {
		return nil, translate(err, p)
	}

	return p, nil
}

// Delete deletes a permission by ID.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.Permission{}, id)
	if result.Error != nil {
		return errors.WithStack(result.Error)
	}

	if result.RowsAffected == 0 {
		return errors.WithStack(fmt.Errorf("%w: id %d", ErrNotFound, id))
	}

	return nil
}
