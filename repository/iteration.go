package repository

import (
	"context"

	"github.com/Netcracker/qubership-site-refinement-service/db"
	"github.com/Netcracker/qubership-site-refinement-service/entity"
	"github.com/go-pg/pg/v10"
)

type IterationRepository interface {
	SaveIteration(ctx context.Context, ent entity.RefinementIteration) error
	GetIterations(ctx context.Context, sessionId string) ([]entity.RefinementIteration, error)
}

func NewIterationRepository(cp db.ConnectionProvider) IterationRepository {
	return &iterationRepositoryImpl{cp: cp}
}

type iterationRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (i iterationRepositoryImpl) SaveIteration(ctx context.Context, ent entity.RefinementIteration) error {
	_, err := i.cp.GetConnection().ModelContext(ctx, &ent).Insert()
	return err
}

func (i iterationRepositoryImpl) GetIterations(ctx context.Context, sessionId string) ([]entity.RefinementIteration, error) {
	var ents []entity.RefinementIteration
	err := i.cp.GetConnection().ModelContext(ctx, &ents).
		Where("session_id = ?", sessionId).
		Order("number ASC").
		Select()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return ents, nil
}
