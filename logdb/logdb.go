// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"math/big"

	_ "github.com/mattn/go-sqlite3"

	"github.com/RonieSteiner/NFT-Auction/nft"
)

const (
	eventTableSchema = `CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	ts INTEGER NOT NULL,
	name TEXT NOT NULL,
	auctionID INTEGER NOT NULL,
	address BLOB NOT NULL,
	amount BLOB NOT NULL
);`
	transferTableSchema = `CREATE TABLE IF NOT EXISTS transfer (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	ts INTEGER NOT NULL,
	sender BLOB NOT NULL,
	recipient BLOB NOT NULL,
	amount BLOB NOT NULL
);`
)

// LogDB is the append-only event and transfer log. Rows are written only
// after the producing operation has committed.
type LogDB struct {
	path string
	db   *sql.DB
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		return nil, err
	}

	return &LogDB{
		path,
		db,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// Write appends one operation's events and transfers in a single sqlite
// transaction.
func (db *LogDB) Write(events nft.Events, transfers nft.Transfers) (err error) {
	if len(events) == 0 && len(transfers) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	for _, ev := range events {
		if _, err = tx.Exec("INSERT INTO event(ts, name, auctionID, address, amount) VALUES(?,?,?,?,?)",
			ev.Timestamp, ev.Name, ev.AuctionID, ev.Address.Bytes(), ev.Amount.Bytes()); err != nil {
			return err
		}
	}
	for _, tr := range transfers {
		if _, err = tx.Exec("INSERT INTO transfer(ts, sender, recipient, amount) VALUES(?,?,?,?)",
			tr.Timestamp, tr.Sender.Bytes(), tr.Recipient.Bytes(), tr.Amount.Bytes()); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// FilterEvents queries events matching the filter, all events when nil.
func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT * FROM event")
	}
	var args []interface{}
	stmt := "SELECT * FROM event WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND ts >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND ts <= ? "
		}
	}
	if filter.Name != "" {
		args = append(args, filter.Name)
		stmt += " AND name = ? "
	}
	if filter.AuctionID != nil {
		args = append(args, *filter.AuctionID)
		stmt += " AND auctionID = ? "
	}
	if filter.Address != nil {
		args = append(args, filter.Address.Bytes())
		stmt += " AND address = ? "
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}
	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryEvents(ctx, stmt, args...)
}

// FilterTransfers queries transfers matching the filter, all when nil.
func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	if filter == nil {
		return db.queryTransfers(ctx, "SELECT * FROM transfer")
	}
	var args []interface{}
	stmt := "SELECT * FROM transfer WHERE 1"
	if filter.Range != nil {
		args = append(args, filter.Range.From)
		stmt += " AND ts >= ? "
		if filter.Range.To >= filter.Range.From {
			args = append(args, filter.Range.To)
			stmt += " AND ts <= ? "
		}
	}
	if filter.Sender != nil {
		args = append(args, filter.Sender.Bytes())
		stmt += " AND sender = ? "
	}
	if filter.Recipient != nil {
		args = append(args, filter.Recipient.Bytes())
		stmt += " AND recipient = ? "
	}
	if filter.Order == DESC {
		stmt += " ORDER BY seq DESC "
	} else {
		stmt += " ORDER BY seq ASC "
	}
	if filter.Options != nil {
		stmt += " limit ?, ? "
		args = append(args, filter.Options.Offset, filter.Options.Limit)
	}
	return db.queryTransfers(ctx, stmt, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...interface{}) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		var (
			seq       uint64
			ts        uint64
			name      string
			auctionID uint64
			address   []byte
			amount    []byte
		)
		if err := rows.Scan(&seq, &ts, &name, &auctionID, &address, &amount); err != nil {
			return nil, err
		}
		events = append(events, &Event{
			Seq:       seq,
			Timestamp: ts,
			Name:      name,
			AuctionID: auctionID,
			Address:   nft.BytesToAddress(address),
			Amount:    new(big.Int).SetBytes(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...interface{}) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		var (
			seq       uint64
			ts        uint64
			sender    []byte
			recipient []byte
			amount    []byte
		)
		if err := rows.Scan(&seq, &ts, &sender, &recipient, &amount); err != nil {
			return nil, err
		}
		transfers = append(transfers, &Transfer{
			Seq:       seq,
			Timestamp: ts,
			Sender:    nft.BytesToAddress(sender),
			Recipient: nft.BytesToAddress(recipient),
			Amount:    new(big.Int).SetBytes(amount),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return transfers, nil
}
