package services

import (
	"context"

	"github.com/jobconnect/pipeline/internal/domain/apperrors"
	"github.com/jobconnect/pipeline/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type stageRepository interface {
	Add(ctx context.Context, stage *models.Stage) error
	GetByID(ctx context.Context, id int64) (*models.Stage, error)
	GetByJob(ctx context.Context, jobID int64) ([]models.Stage, error)
	GetSystemByJob(ctx context.Context, jobID int64, name string) (*models.Stage, error)
	MaxOrder(ctx context.Context, jobID int64) (int, error)
	Rename(ctx context.Context, id int64, name string) error
	Remove(ctx context.Context, id int64) error
}

type applicationReparenter interface {
	ReparentStage(ctx context.Context, stageID int64) (int64, error)
}

// StagesService owns the per-job pipeline columns.
type StagesService struct {
	txm    txRunner
	stages stageRepository
	apps   applicationReparenter
	jobs   jobCatalog
}

func NewStagesService(txm txRunner, stages stageRepository, apps applicationReparenter, jobs jobCatalog) *StagesService {
	return &StagesService{txm: txm, stages: stages, apps: apps, jobs: jobs}
}

func (s *StagesService) AddStage(ctx context.Context, jobID, actorID int64, name string) (int64, error) {
	if name == "" {
		return 0, errors.Wrap(apperrors.ErrValidation, "stage name must not be empty")
	}

	if _, err := s.requireJobOwner(ctx, jobID, actorID); err != nil {
		return 0, err
	}

	maxOrder, err := s.stages.MaxOrder(ctx, jobID)
	if err != nil {
		return 0, err
	}

	stage := &models.Stage{
		JobID:     jobID,
		Name:      name,
		SortOrder: maxOrder + 1,
	}
	if err := s.stages.Add(ctx, stage); err != nil {
		return 0, err
	}
	return stage.ID, nil
}

func (s *StagesService) RenameStage(ctx context.Context, stageID, actorID int64, name string) error {
	if name == "" {
		return errors.Wrap(apperrors.ErrValidation, "stage name must not be empty")
	}

	stage, err := s.requireOwnedStage(ctx, stageID, actorID)
	if err != nil {
		return err
	}
	if stage.IsSystem {
		return errors.Wrap(apperrors.ErrSystemStage, "cannot rename a system stage")
	}
	return s.stages.Rename(ctx, stageID, name)
}

// DeleteStage removes the column and returns its applications to the
// intake bucket, both in one transaction.
func (s *StagesService) DeleteStage(ctx context.Context, stageID, actorID int64) error {
	stage, err := s.requireOwnedStage(ctx, stageID, actorID)
	if err != nil {
		return err
	}
	if stage.IsSystem {
		return errors.Wrap(apperrors.ErrSystemStage, "cannot delete a system stage")
	}

	return s.txm.Do(ctx, func(ctx context.Context) error {
		reparented, err := s.apps.ReparentStage(ctx, stageID)
		if err != nil {
			return err
		}
		if reparented > 0 {
			log.Infof("stage %v deleted, %v applications moved to intake", stageID, reparented)
		}
		return s.stages.Remove(ctx, stageID)
	})
}

// EnsureHiredStage lazily materialises the reserved Hired stage. Safe
// under concurrent hires: the loser of the insert race re-reads the
// winner's row.
func (s *StagesService) EnsureHiredStage(ctx context.Context, jobID int64) (*models.Stage, error) {
	stage, err := s.stages.GetSystemByJob(ctx, jobID, models.HiredStageName)
	if err != nil {
		return nil, err
	}
	if stage != nil {
		return stage, nil
	}

	stage = &models.Stage{
		JobID:     jobID,
		Name:      models.HiredStageName,
		SortOrder: models.HiredStageOrder,
		IsSystem:  true,
	}
	err = s.stages.Add(ctx, stage)
	if err == nil {
		return stage, nil
	}
	if !errors.Is(err, apperrors.ErrDuplicate) {
		return nil, err
	}

	stage, err = s.stages.GetSystemByJob(ctx, jobID, models.HiredStageName)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		// The name slot is taken by an employer-created "Hired" column,
		// which never satisfies the system stage requirement.
		return nil, errors.Wrap(apperrors.ErrDuplicate, "a custom stage named Hired blocks the system stage")
	}
	return stage, nil
}

// StageList separates the reserved stages from employer-created ones.
type StageList struct {
	System []models.Stage
	Custom []models.Stage
}

func (s *StagesService) ListStages(ctx context.Context, jobID, actorID int64) (*StageList, error) {
	if _, err := s.requireJobOwner(ctx, jobID, actorID); err != nil {
		return nil, err
	}

	stages, err := s.stages.GetByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	system, custom := lo.FilterReject(stages, func(stage models.Stage, _ int) bool {
		return stage.IsSystem
	})
	return &StageList{System: system, Custom: custom}, nil
}

func (s *StagesService) requireJobOwner(ctx context.Context, jobID, actorID int64) (*models.Job, error) {
	job, err := s.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.Wrap(apperrors.ErrNotFound, "job does not exist")
	}
	if job.EmployerID != actorID {
		return nil, errors.Wrap(apperrors.ErrForbidden, "actor does not own this job")
	}
	return job, nil
}

func (s *StagesService) requireOwnedStage(ctx context.Context, stageID, actorID int64) (*models.Stage, error) {
	stage, err := s.stages.GetByID(ctx, stageID)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, errors.Wrap(apperrors.ErrNotFound, "stage does not exist")
	}
	if _, err := s.requireJobOwner(ctx, stage.JobID, actorID); err != nil {
		return nil, err
	}
	return stage, nil
}
