package model

import (
	"context"
	"encoding/json"
	"time"

	"pokertable-server/pkg/db"
	"pokertable-server/pkg/holdem"
)

const tableColumns = `
tables.uuid,
tables.name,
tables.options,
tables.status,
tables.created,
tables.updated`

// Table is a record in the `tables` table. The live table state machine is
// owned by the dealer; this record is what survives a restart.
type Table struct {
	UUID    string         `json:"uuid"`
	Name    string         `json:"name"`
	Options holdem.Options `json:"options"`
	Status  string         `json:"status"`
	Created time.Time      `json:"created"`
	Updated time.Time      `json:"updated"`
}

// CreateTable persists a new table record
func CreateTable(ctx context.Context, uuid, name string, options holdem.Options) (*Table, error) {
	opts, err := json.Marshal(options)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO tables (uuid, name, options, status)
VALUES ($1, $2, $3, $4)
RETURNING created, updated`

	var created, updated time.Time
	row := db.Instance().QueryRowContext(ctx, query, uuid, name, opts, holdem.StateSeated.String())
	if err := row.Scan(&created, &updated); err != nil {
		return nil, err
	}

	return &Table{
		UUID:    uuid,
		Name:    name,
		Options: options,
		Status:  holdem.StateSeated.String(),
		Created: created,
		Updated: updated,
	}, nil
}

func getTableByRow(row db.Scanner) (*Table, error) {
	var t Table
	var opts []byte

	if err := row.Scan(&t.UUID, &t.Name, &opts, &t.Status, &t.Created, &t.Updated); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(opts, &t.Options); err != nil {
		return nil, err
	}

	return &t, nil
}

// GetTableByUUID returns a table by its UUID
func GetTableByUUID(ctx context.Context, uuid string) (*Table, error) {
	const query = `
SELECT ` + tableColumns + `
FROM tables
WHERE uuid = $1`

	row := db.Instance().QueryRowContext(ctx, query, uuid)
	return getTableByRow(row)
}

// GetTables returns a page of tables, newest first
func GetTables(ctx context.Context, start int64, rows int) ([]*Table, error) {
	const query = `
SELECT ` + tableColumns + `
FROM tables
ORDER BY created DESC, uuid
OFFSET $1 LIMIT $2`

	res, err := db.Instance().QueryContext(ctx, query, start, rows)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	tables := make([]*Table, 0)
	for res.Next() {
		t, err := getTableByRow(res)
		if err != nil {
			return nil, err
		}

		tables = append(tables, t)
	}

	return tables, res.Err()
}

// SetStatus records the table's lifecycle state
func (t *Table) SetStatus(ctx context.Context, status string) error {
	const query = `
UPDATE tables
SET status = $1, updated = (NOW() AT TIME ZONE 'UTC')
WHERE uuid = $2`

	if _, err := db.Instance().ExecContext(ctx, query, status, t.UUID); err != nil {
		return err
	}

	t.Status = status
	return nil
}
