package repository

import (
	"context"

	"gorm.io/gorm"
)

const (
	DefaultLimit = 25
	MaxLimit     = 100
)

// Page is a limit/offset window over a listing. Total, when set, receives
// the unpaged row count of the listing the page was used for; copies of a
// Page share it.
type Page struct {
	Number int
	Limit  int
	Offset int
	Total  *int64
}

func NewPage(page, limit int) Page {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}
	if page < 1 {
		page = 1
	}
	return Page{Number: page, Limit: limit, Offset: (page - 1) * limit, Total: new(int64)}
}

// PageLink points at a neighbouring page.
type PageLink struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination holds the links to the pages around p, if any.
type Pagination struct {
	Next *PageLink `json:"next,omitempty"`
	Prev *PageLink `json:"prev,omitempty"`
}

func (p Page) Links() Pagination {
	var out Pagination
	if p.Limit <= 0 {
		return out
	}
	if p.Total != nil && int64(p.Offset+p.Limit) < *p.Total {
		out.Next = &PageLink{Page: p.Number + 1, Limit: p.Limit}
	}
	if p.Offset > 0 {
		out.Prev = &PageLink{Page: p.Number - 1, Limit: p.Limit}
	}
	return out
}

// window counts q into p.Total and applies the limit.
func (p Page) window(q *gorm.DB) (*gorm.DB, error) {
	if p.Total != nil {
		if err := q.Session(&gorm.Session{}).Count(p.Total).Error; err != nil {
			return nil, err
		}
	}
	if p.Limit > 0 {
		q = q.Limit(p.Limit).Offset(p.Offset)
	}
	return q, nil
}

// store carries the lookups every repository shares.
type store[T any] struct {
	DB *gorm.DB
}

func (s store[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var out T
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (s store[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	var out []T
	if len(ids) == 0 {
		return out, nil
	}
	err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

// List returns rows matching filter (column -> value), newest first.
func (s store[T]) List(ctx context.Context, filter map[string]any, p Page) ([]T, error) {
	var out []T
	q := s.DB.WithContext(ctx).Model(new(T))
	if len(filter) > 0 {
		q = q.Where(filter)
	}
	q, err := p.window(q)
	if err != nil {
		return nil, err
	}
	err = q.Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s store[T]) Exists(ctx context.Context, filter map[string]any) (bool, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(new(T)).Where(filter).Count(&n).Error
	return n > 0, err
}

func (s store[T]) Create(ctx context.Context, row *T) error {
	return s.DB.WithContext(ctx).Create(row).Error
}

func (s store[T]) Save(ctx context.Context, row *T) error {
	return s.DB.WithContext(ctx).Save(row).Error
}

// Updates writes only the given columns.
func (s store[T]) Updates(ctx context.Context, id string, fields map[string]any) error {
	return s.DB.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields).Error
}

func (s store[T]) Delete(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error
}

func (s store[T]) DeleteWhere(ctx context.Context, filter map[string]any) error {
	return s.DB.WithContext(ctx).Where(filter).Delete(new(T)).Error
}
