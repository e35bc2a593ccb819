package gormrepo

import (
	"context"
	"errors"

	"brcargo_cotacoes/internal/domain/entities"
	"brcargo_cotacoes/internal/usecase/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ interfaces.IUserRepository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) GetByID(ctx context.Context, id string) (entities.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.User{}, nil
	}
	if err != nil {
		return entities.User{}, err
	}
	return fromUserModel(m), nil
}

func (r *UserGormRepository) ListByRoles(ctx context.Context, roles []entities.Role) ([]entities.User, error) {
	if len(roles) == 0 {
		return []entities.User{}, nil
	}
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}

	var models []UserModel
	if err := r.db.WithContext(ctx).Where("role IN ?", names).Order("id").Find(&models).Error; err != nil {
		return nil, err
	}
	users := make([]entities.User, 0, len(models))
	for _, m := range models {
		users = append(users, fromUserModel(m))
	}
	return users, nil
}

// Save inserts the user or overwrites every column of an existing row.
func (r *UserGormRepository) Save(ctx context.Context, u entities.User) error {
	m := UserModel{ID: u.ID, Name: u.Name, Email: u.Email, Role: string(u.Role), Active: u.Active}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&m).Error
}

func fromUserModel(m UserModel) entities.User {
	return entities.User{ID: m.ID, Name: m.Name, Email: m.Email, Role: entities.Role(m.Role), Active: m.Active}
}

type CompanyGormRepository struct {
	db *gorm.DB
}

var _ interfaces.ICompanyRepository = (*CompanyGormRepository)(nil)

func NewCompanyGormRepository(db *gorm.DB) *CompanyGormRepository {
	return &CompanyGormRepository{db: db}
}

func (r *CompanyGormRepository) GetByID(ctx context.Context, id string) (entities.Company, error) {
	var m CompanyModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.Company{}, nil
	}
	if err != nil {
		return entities.Company{}, err
	}
	return entities.Company{ID: m.ID, Name: m.Name, TaxID: m.TaxID, Active: m.Active}, nil
}

func (r *CompanyGormRepository) Save(ctx context.Context, c entities.Company) error {
	m := CompanyModel{ID: c.ID, Name: c.Name, TaxID: c.TaxID, Active: c.Active}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&m).Error
}
