package model

import (
	"context"
	"encoding/json"
	"time"

	"pokertable-server/pkg/db"
	"pokertable-server/pkg/holdem"
)

const handColumns = `
hands.id,
hands.table_uuid,
hands.result,
hands.fee,
hands.created`

// Hand is a settled hand in the `hands` table. Result holds the settlement
// as it was recorded; it is kept as raw JSON because the rank encoding is a
// one-way presentation format.
type Hand struct {
	ID        int64           `json:"id"`
	TableUUID string          `json:"tableUuid"`
	Result    json.RawMessage `json:"result"`
	Fee       int             `json:"fee"`
	Created   time.Time       `json:"created"`
}

// LogHand records a settled hand
func LogHand(ctx context.Context, tableUUID string, result *holdem.HandResult) (*Hand, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}

	const query = `
INSERT INTO hands (table_uuid, result, fee)
VALUES ($1, $2, $3)
RETURNING id, created`

	var id int64
	var created time.Time
	row := db.Instance().QueryRowContext(ctx, query, tableUUID, payload, result.Fee)
	if err := row.Scan(&id, &created); err != nil {
		return nil, err
	}

	return &Hand{
		ID:        id,
		TableUUID: tableUUID,
		Result:    payload,
		Fee:       result.Fee,
		Created:   created,
	}, nil
}

func getHandByRow(row db.Scanner) (*Hand, error) {
	var h Hand
	var payload []byte

	if err := row.Scan(&h.ID, &h.TableUUID, &payload, &h.Fee, &h.Created); err != nil {
		return nil, err
	}

	h.Result = payload
	return &h, nil
}

// GetHandsByTableUUID returns a page of the table's settled hands, newest first
func GetHandsByTableUUID(ctx context.Context, tableUUID string, start int64, rows int) ([]*Hand, error) {
	const query = `
SELECT ` + handColumns + `
FROM hands
WHERE table_uuid = $1
ORDER BY created DESC, id DESC
OFFSET $2 LIMIT $3`

	res, err := db.Instance().QueryContext(ctx, query, tableUUID, start, rows)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	hands := make([]*Hand, 0)
	for res.Next() {
		h, err := getHandByRow(res)
		if err != nil {
			return nil, err
		}

		hands = append(hands, h)
	}

	return hands, res.Err()
}
