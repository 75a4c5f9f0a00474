package editedlosses

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repo interface {
	Get(ctx context.Context, codigoIbge string, competencia string) (EditedMunicipality, error)
	// Upsert stores the record, replacing any previous edit for the same
	// municipality and competência.
	Upsert(ctx context.Context, record EditedMunicipality) error
	GetAll(ctx context.Context) ([]EditedMunicipality, error)
	Delete(ctx context.Context, codigoIbge string, competencia string) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Get(ctx context.Context, codigoIbge string, competencia string) (EditedMunicipality, error) {
	query := `SELECT codigo_ibge, competencia, perca_recurso_mensal, data_edicao
				FROM municipio_editado WHERE codigo_ibge = $1 AND competencia = $2`

	row := r.db.QueryRowContext(ctx, query, codigoIbge, competencia)
	record, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return EditedMunicipality{}, ErrNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not query edited municipality: %w", err)
		log.Error(err)
		return EditedMunicipality{}, err
	}
	return record, nil
}

func (r *RepoImpl) Upsert(ctx context.Context, record EditedMunicipality) error {
	losses, err := json.Marshal(record.PercaRecursoMensal)
	if err != nil {
		return fmt.Errorf("could not encode loss values: %w", err)
	}

	query := `INSERT INTO municipio_editado (codigo_ibge, competencia, perca_recurso_mensal, data_edicao)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (codigo_ibge, competencia) DO UPDATE
				SET perca_recurso_mensal = excluded.perca_recurso_mensal, data_edicao = excluded.data_edicao`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	if _, err := stmt.ExecContext(ctx,
		record.CodigoIbge,
		record.Competencia,
		string(losses),
		record.DataEdicao.Format(time.RFC3339),
	); err != nil {
		err := fmt.Errorf("could not upsert edited municipality: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) GetAll(ctx context.Context) ([]EditedMunicipality, error) {
	query := `SELECT codigo_ibge, competencia, perca_recurso_mensal, data_edicao
				FROM municipio_editado ORDER BY codigo_ibge, competencia`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query edited municipalities: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	records := make([]EditedMunicipality, 0)
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			err := fmt.Errorf("could not scan edited municipality: %w", err)
			log.Error(err)
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate edited municipalities: %w", err)
	}
	return records, nil
}

func (r *RepoImpl) Delete(ctx context.Context, codigoIbge string, competencia string) (bool, error) {
	query := `DELETE FROM municipio_editado WHERE codigo_ibge = $1 AND competencia = $2`

	result, err := r.db.ExecContext(ctx, query, codigoIbge, competencia)
	if err != nil {
		err := fmt.Errorf("could not delete edited municipality: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("could not retrieve affected rows: %w", err)
	}
	return affected > 0, nil
}

func scanRecord(scan func(dest ...any) error) (EditedMunicipality, error) {
	var record EditedMunicipality
	var losses string
	var edicao string
	if err := scan(&record.CodigoIbge, &record.Competencia, &losses, &edicao); err != nil {
		return EditedMunicipality{}, err
	}
	if err := json.Unmarshal([]byte(losses), &record.PercaRecursoMensal); err != nil {
		return EditedMunicipality{}, fmt.Errorf("could not decode loss values: %w", err)
	}
	parsed, err := time.Parse(time.RFC3339, edicao)
	if err != nil {
		return EditedMunicipality{}, fmt.Errorf("could not parse edition date: %w", err)
	}
	record.DataEdicao = parsed
	return record, nil
}
