package users

import (
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/Mbishu2002/newDesk/internal/repository"
	"github.com/Mbishu2002/newDesk/pkg/apperrors"
	"github.com/Mbishu2002/newDesk/pkg/models"
)

type UserRepository interface {
	PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error)
	GetUser(id string) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(id string, changes UserChanges) error
}

// UserChanges carries the mutable fields of a user row. Nil means leave
// as is.
type UserChanges struct {
	Username     *string
	Email        *string
	PasswordHash *string
	Role         *string
	ShopID       *string
}

func (c UserChanges) HasChanges() bool {
	return c.Username != nil || c.Email != nil || c.PasswordHash != nil || c.Role != nil || c.ShopID != nil
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(req models.CreateUserRequest, hashedPassword []byte) (*models.User, error) {
	user := models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Role:         req.Role,
		ShopID:       req.ShopID,
		CreatedAt:    time.Now(),
	}

	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"id":            user.ID,
			"username":      user.Username,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
			"role":          user.Role,
			"shop_id":       user.ShopID,
			"created_at":    user.CreatedAt,
		})

	if _, err := query.Executor().Exec(); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUser(id string) (*models.User, error) {
	return r.getBy(goqu.Ex{"id": id})
}

func (r *userRepositoryImpl) GetByUsername(username string) (*models.User, error) {
	return r.getBy(goqu.Ex{"username": username})
}

func (r *userRepositoryImpl) GetByEmail(email string) (*models.User, error) {
	return r.getBy(goqu.Ex{"email": email})
}

func (r *userRepositoryImpl) getBy(where goqu.Ex) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.
		Select("id", "username", "email", "password_hash", "role", "shop_id", "created_at").
		From("users").
		Where(where)

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperrors.FromDB(err)
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUsers() ([]models.User, error) {
	var users []models.User
	query := r.repository.GoquDBWrapper.
		Select("id", "username", "email", "role", "shop_id", "created_at").
		From("users").
		Order(goqu.I("username").Asc())

	if err := query.Executor().ScanStructs(&users); err != nil {
		return nil, apperrors.FromDB(err)
	}

	return users, nil
}

func (r *userRepositoryImpl) UpdateUser(id string, changes UserChanges) error {
	record := goqu.Record{}
	if changes.Username != nil {
		record["username"] = *changes.Username
	}
	if changes.Email != nil {
		record["email"] = *changes.Email
	}
	if changes.PasswordHash != nil {
		record["password_hash"] = *changes.PasswordHash
	}
	if changes.Role != nil {
		record["role"] = *changes.Role
	}
	if changes.ShopID != nil {
		record["shop_id"] = *changes.ShopID
	}
	if len(record) == 0 {
		return nil
	}

	result, err := r.repository.GoquDBWrapper.Update("users").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Executor().Exec()
	if err != nil {
		return apperrors.FromDB(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Store(err)
	}
	if affected == 0 {
		return apperrors.NotFound("user %s not found", id)
	}

	return nil
}
