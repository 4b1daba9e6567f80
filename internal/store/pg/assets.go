package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"patrimoine.mr/internal/registry"
)

const assetColumns = `id, reference, ministry_id, sub_entity, asset_type,
	condition, description, acquisition_date, value, current_value, wilaya,
	location_details, coordinates, documents, specific_details, created_at`

func scanAsset(scanner interface{ Scan(...any) error }) (registry.AssetRow, error) {
	var (
		row       registry.AssetRow
		subEntity sql.NullString
		current   sql.NullFloat64
		coords    []byte
		documents []byte
		details   []byte
	)
	err := scanner.Scan(
		&row.ID, &row.Reference, &row.MinistryID, &subEntity, &row.AssetType,
		&row.Condition, &row.Description, &row.AcquisitionDate, &row.Value,
		&current, &row.Wilaya, &row.LocationDetails,
		&coords, &documents, &details, &row.CreatedAt,
	)
	if err != nil {
		return registry.AssetRow{}, err
	}
	if subEntity.Valid {
		v := subEntity.String
		row.SubEntity = &v
	}
	if current.Valid {
		v := current.Float64
		row.CurrentValue = &v
	}
	if len(coords) > 0 {
		var point registry.GeoPoint
		if err := json.Unmarshal(coords, &point); err != nil {
			return registry.AssetRow{}, fmt.Errorf("decode coordinates: %w", err)
		}
		row.Coordinates = &point
	}
	row.Documents = []registry.Document{}
	if len(documents) > 0 {
		if err := json.Unmarshal(documents, &row.Documents); err != nil {
			return registry.AssetRow{}, fmt.Errorf("decode documents: %w", err)
		}
	}
	row.SpecificDetails = map[string]string{}
	if len(details) > 0 {
		if err := json.Unmarshal(details, &row.SpecificDetails); err != nil {
			return registry.AssetRow{}, fmt.Errorf("decode specific details: %w", err)
		}
	}
	return row, nil
}

func assetArgs(a registry.AssetRow) ([]any, error) {
	var coords any
	if a.Coordinates != nil {
		bytes, err := json.Marshal(a.Coordinates)
		if err != nil {
			return nil, fmt.Errorf("marshal coordinates: %w", err)
		}
		coords = bytes
	}
	documents := a.Documents
	if documents == nil {
		documents = []registry.Document{}
	}
	docBytes, err := json.Marshal(documents)
	if err != nil {
		return nil, fmt.Errorf("marshal documents: %w", err)
	}
	details := a.SpecificDetails
	if details == nil {
		details = map[string]string{}
	}
	detailBytes, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshal specific details: %w", err)
	}
	return []any{
		a.ID, a.Reference, a.MinistryID, nullIfEmpty(a.SubEntity),
		a.AssetType, a.Condition, a.Description, a.AcquisitionDate,
		a.Value, nullFloat(a.CurrentValue), a.Wilaya, a.LocationDetails,
		coords, docBytes, detailBytes,
	}, nil
}

func (s *Store) ListAssets(ctx context.Context) ([]registry.AssetRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		select `+assetColumns+`
		from asset_declarations
		order by created_at desc, id desc
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []registry.AssetRow
	for rows.Next() {
		row, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Store) InsertAsset(ctx context.Context, a registry.AssetRow) (registry.AssetRow, error) {
	args, err := assetArgs(a)
	if err != nil {
		return registry.AssetRow{}, err
	}
	row, err := scanAsset(s.db.QueryRowContext(ctx, `
		insert into asset_declarations (
			id, reference, ministry_id, sub_entity, asset_type, condition,
			description, acquisition_date, value, current_value, wilaya,
			location_details, coordinates, documents, specific_details
		)
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		returning `+assetColumns+`
	`, args...))
	if err != nil {
		return registry.AssetRow{}, translateErr(err)
	}
	return row, nil
}

func (s *Store) UpdateAsset(ctx context.Context, a registry.AssetRow) (registry.AssetRow, error) {
	args, err := assetArgs(a)
	if err != nil {
		return registry.AssetRow{}, err
	}
	row, err := scanAsset(s.db.QueryRowContext(ctx, `
		update asset_declarations set
			reference = $2, ministry_id = $3, sub_entity = $4,
			asset_type = $5, condition = $6, description = $7,
			acquisition_date = $8, value = $9, current_value = $10,
			wilaya = $11, location_details = $12, coordinates = $13,
			documents = $14, specific_details = $15
		where id = $1
		returning `+assetColumns+`
	`, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return registry.AssetRow{}, registry.ErrNotFound
		}
		return registry.AssetRow{}, translateErr(err)
	}
	return row, nil
}

func (s *Store) DeleteAsset(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `delete from asset_declarations where id = $1`, id)
	if err != nil {
		return err
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if aff == 0 {
		return registry.ErrNotFound
	}
	return nil
}
