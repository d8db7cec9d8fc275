package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"paroquia-backend/internal/domain"
	"paroquia-backend/internal/feature/user"
)

// DirectoryRepo is the gorm-backed domain.DirectoryStore.
type DirectoryRepo struct{ db *gorm.DB }

func NewDirectoryRepo(db *gorm.DB) *DirectoryRepo { return &DirectoryRepo{db: db} }

func (r *DirectoryRepo) Get(ctx context.Context, uid string) (*domain.UserRecord, error) {
	var m user.UserModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u, err := toUserRecord(m)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *DirectoryRepo) List(ctx context.Context) ([]domain.UserRecord, error) {
	var rows []user.UserModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.UserRecord, 0, len(rows))
	for _, m := range rows {
		u, err := toUserRecord(m)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *DirectoryRepo) Create(ctx context.Context, u *domain.UserRecord) error {
	m, err := fromUserRecord(*u)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	u.CriadoEm = m.CriadoEm
	return nil
}

// SetActive looks the row up first: MySQL reports zero affected rows when the
// value is unchanged, which is not a missing record.
func (r *DirectoryRepo) SetActive(ctx context.Context, uid string, active bool) error {
	db := r.db.WithContext(ctx)
	var m user.UserModel
	err := db.Select("id").First(&m, "id = ?", uid).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if err != nil {
		return err
	}
	return db.Model(&user.UserModel{}).Where("id = ?", uid).Update("ativo", active).Error
}

func (r *DirectoryRepo) Delete(ctx context.Context, uid string) error {
	return r.db.WithContext(ctx).Where("id = ?", uid).Delete(&user.UserModel{}).Error
}

func toUserRecord(m user.UserModel) (domain.UserRecord, error) {
	var cats []string
	if len(m.Categorias) > 0 {
		if err := json.Unmarshal(m.Categorias, &cats); err != nil {
			return domain.UserRecord{}, fmt.Errorf("usuario %s: decode categorias: %w", m.ID, err)
		}
	}
	return domain.UserRecord{
		ID:                m.ID,
		Nome:              m.Nome,
		Email:             m.Email,
		Role:              domain.Role(m.Role),
		Ativo:             m.Ativo,
		FCMToken:          m.FCMToken,
		Categorias:        cats,
		IDGrupoMusical:    m.IDGrupoMusical,
		IDGrupoCoordenado: m.IDGrupoCoordenado,
		CriadoEm:          m.CriadoEm,
	}, nil
}

func fromUserRecord(u domain.UserRecord) (user.UserModel, error) {
	cats := u.Categorias
	if cats == nil {
		cats = []string{}
	}
	b, err := json.Marshal(cats)
	if err != nil {
		return user.UserModel{}, err
	}
	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}
	return user.UserModel{
		ID:                u.ID,
		Nome:              u.Nome,
		Email:             u.Email,
		Role:              string(role),
		Ativo:             u.Ativo,
		FCMToken:          u.FCMToken,
		Categorias:        datatypes.JSON(b),
		IDGrupoMusical:    u.IDGrupoMusical,
		IDGrupoCoordenado: u.IDGrupoCoordenado,
		CriadoEm:          u.CriadoEm,
	}, nil
}
