package cats

import (
	"context"
	"fmt"
	"time"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Validate solo exige presencia: string vacío o de espacios cuenta como ausente.
func Validate(p Params) []string {
	p = p.normalized()

	var out []string
	if p.Name == "" {
		out = append(out, "name can't be blank")
	}
	if p.Breed == "" {
		out = append(out, "breed can't be blank")
	}
	return out
}

func (s *Service) Create(ctx context.Context, p Params) (Cat, error) {
	if v := Validate(p); len(v) > 0 {
		return Cat{}, &ValidationError{Violations: v}
	}
	p = p.normalized()

	now := s.now()
	c, err := s.repo.Create(ctx, Cat{
		Name:      p.Name,
		Breed:     p.Breed,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return Cat{}, fmt.Errorf("create cat: %w", err)
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, p Params) (Cat, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Cat{}, err
	}
	if v := Validate(p); len(v) > 0 {
		return Cat{}, &ValidationError{Violations: v}
	}
	p = p.normalized()

	current.Name = p.Name
	current.Breed = p.Breed
	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Cat{}, fmt.Errorf("update cat %d: %w", id, err)
	}
	return current, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete cat %d: %w", id, err)
	}
	return nil
}

func (s *Service) Find(ctx context.Context, id int64) (Cat, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Cat, error) {
	return s.repo.List(ctx)
}
