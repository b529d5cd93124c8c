package service

import (
	"context"
	"log/slog"
	"time"

	"portfolio/internal/domain"
	"portfolio/internal/normalize"
	"portfolio/internal/store"
)

// SkillResource and friends pin down the generic Resource instantiations so
// wiring code and tests name one type instead of repeating type arguments.
type (
	SkillResource         = Resource[domain.Skill, *domain.Skill]
	ProjectResource       = Resource[domain.Project, *domain.Project]
	ExperienceResource    = Resource[domain.Experience, *domain.Experience]
	EducationResource     = Resource[domain.Education, *domain.Education]
	CertificationResource = Resource[domain.Certification, *domain.Certification]
)

// PortfolioService bundles the five collection resources with the
// whole-document operations: the public projection and the personal-info
// singleton.
type PortfolioService struct {
	Skills         *SkillResource
	Projects       *ProjectResource
	Experiences    *ExperienceResource
	Education      *EducationResource
	Certifications *CertificationResource

	store  store.Store
	logger *slog.Logger
	now    func() time.Time
}

func NewPortfolioService(st store.Store, logger *slog.Logger) *PortfolioService {
	return &PortfolioService{
		Skills: NewResource[domain.Skill](
			domain.CollectionSkills, st, logger,
			func(d *domain.PortfolioDocument) []domain.Skill { return d.Skills },
			func(d *domain.PortfolioDocument, items []domain.Skill) { d.Skills = items },
			nil,
		),
		Projects: NewResource[domain.Project](
			domain.CollectionProjects, st, logger,
			func(d *domain.PortfolioDocument) []domain.Project { return d.Projects },
			func(d *domain.PortfolioDocument, items []domain.Project) { d.Projects = items },
			normalize.ReconcileProject,
		),
		Experiences: NewResource[domain.Experience](
			domain.CollectionExperiences, st, logger,
			func(d *domain.PortfolioDocument) []domain.Experience { return d.Experiences },
			func(d *domain.PortfolioDocument, items []domain.Experience) { d.Experiences = items },
			nil,
		),
		Education: NewResource[domain.Education](
			domain.CollectionEducation, st, logger,
			func(d *domain.PortfolioDocument) []domain.Education { return d.Education },
			func(d *domain.PortfolioDocument, items []domain.Education) { d.Education = items },
			nil,
		),
		Certifications: NewResource[domain.Certification](
			domain.CollectionCertifications, st, logger,
			func(d *domain.PortfolioDocument) []domain.Certification { return d.Certifications },
			func(d *domain.PortfolioDocument, items []domain.Certification) { d.Certifications = items },
			nil,
		),
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// PublicView returns the unauthenticated projection: personal info plus each
// collection filtered to visible entities, sorted by order.
func (s *PortfolioService) PublicView(ctx context.Context) (*domain.PortfolioDocument, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return normalize.PublicDocument(doc), nil
}

// PersonalInfo returns the singleton record.
func (s *PortfolioService) PersonalInfo(ctx context.Context) (*domain.PersonalInfo, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return &doc.PersonalInfo, nil
}

// UpdatePersonalInfo merges the body over the stored record and refreshes its
// updatedAt. The singleton has no id, visibility, or order to manage.
func (s *PortfolioService) UpdatePersonalInfo(ctx context.Context, body map[string]any) (*domain.PersonalInfo, error) {
	doc, err := s.store.Read(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := entityToMap(doc.PersonalInfo)
	if err != nil {
		return nil, err
	}
	for k, v := range body {
		existing[k] = v
	}
	existing["updatedAt"] = normalize.Timestamp(s.now())

	info, err := entityFromMap[domain.PersonalInfo](existing)
	if err != nil {
		return nil, err
	}

	doc.PersonalInfo = info
	if err := s.store.Write(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("personal info updated")
	return &doc.PersonalInfo, nil
}
