// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-ledger-keeper/internal/logger"
	"github.com/MKhiriev/go-ledger-keeper/models"
)

// AccountSortSpec is the sort vocabulary of the account list.
var AccountSortSpec = NewSortSpec(
	map[string]string{
		"name":            "name",
		"balance":         "balance",
		"lastTransDate":   "last_trans_date",
		"last_trans_date": "last_trans_date",
	},
	models.SortClause{Field: "name", Order: models.SortASC},
)

type accountRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAccountRepository constructs an [AccountRepository] on db.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// ListAccounts returns one page of accounts with the count and the balance
// sum of the whole filtered set.
func (r *accountRepository) ListAccounts(ctx context.Context, req models.AccountListRequest) (models.AccountListResponse, error) {
	var resp models.AccountListResponse

	q, err := NewListQuery(accountListBase(req), AccountSortSpec, req.ListRequest)
	if err != nil {
		return resp, err
	}
	q.Aggregate = accountAggregate

	err = r.db.InReadTx(ctx, func(tx *sql.Tx) error {
		resp.Data, err = List(ctx, tx, q, scanAccount, &resp.Total, &resp.Balance)
		return err
	})
	if err != nil {
		return models.AccountListResponse{}, err
	}

	return resp, nil
}

// accountListBase splits every transaction into a credit leg for to_account
// and a debit leg for from_account, then sums the legs per account name.
// Names compare case-insensitively and the lowest spelling is reported.
func accountListBase(req models.AccountListRequest) sq.SelectBuilder {
	legs := sq.Select(
		"trim(CASE WHEN s.side = 1 THEN t.to_account ELSE t.from_account END) AS name",
		"s.side * t.amount AS delta",
		"t.trans_date AS trans_date",
	).
		From("transactions t").
		CrossJoin("(SELECT 1 AS side UNION ALL SELECT -1 AS side) s")

	if req.From != nil {
		legs = legs.Where("t.trans_date >= ?", req.From.String())
	}
	if req.To != nil {
		legs = legs.Where("t.trans_date <= ?", req.To.String())
	}

	base := sq.Select(
		"MIN(legs.name) AS name",
		"SUM(legs.delta) AS balance",
		"MAX(legs.trans_date) AS last_trans_date",
	).
		FromSelect(legs, "legs").
		Where("legs.name <> ''")

	if q := req.Query(); q != "" {
		base = base.Where("legs.name LIKE ?", "%"+q+"%")
	}
	if req.Includes != nil {
		base = base.Where(sq.Eq{"lower(legs.name)": normalizeAccounts(req.Includes)})
	}
	if req.Group != nil {
		members := sq.Select("lower(ag.account_name)").
			From("account_groups ag").
			Where("ag.group_name = ?", strings.TrimSpace(*req.Group))
		base = base.Where(sq.Expr("lower(legs.name) IN (?)", members))
	}

	return base.GroupBy("lower(legs.name)")
}

func scanAccount(rows *sql.Rows) (models.Account, error) {
	var (
		a         models.Account
		transDate string
	)
	if err := rows.Scan(&a.Name, &a.Balance, &transDate); err != nil {
		return models.Account{}, err
	}

	var err error
	if a.LastTransDate, err = models.ParseDate(transDate); err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrDecodingRow, err)
	}
	return a, nil
}

// ListAccountGroups returns every group with its members, both ordered by
// name.
func (r *accountRepository) ListAccountGroups(ctx context.Context) ([]models.AccountGroup, error) {
	groups := make([]models.AccountGroup, 0)

	err := r.db.InReadTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, selectAccountGroups)
		if err != nil {
			return r.db.classify(ErrExecutingQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				g       models.AccountGroup
				members string
			)
			if err = rows.Scan(&g.GroupName, &members); err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRow, err)
			}
			if err = json.Unmarshal([]byte(members), &g.Accounts); err != nil {
				return fmt.Errorf("%w: accounts: %w", ErrDecodingRow, err)
			}
			groups = append(groups, g)
		}
		return rows.Err()
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountRepository.ListAccountGroups").Msg("failed to list account groups")
		return nil, err
	}

	return groups, nil
}

// ReplaceAccountGroups overwrites the membership of every group named in
// groups. Other groups are left alone. The return value counts the member
// rows written.
func (r *accountRepository) ReplaceAccountGroups(ctx context.Context, groups []models.AccountGroup) (int64, error) {
	log := logger.FromContext(ctx)

	var written int64
	err := r.db.InTx(ctx, func(tx *sql.Tx) error {
		for _, g := range groups {
			name := strings.TrimSpace(g.GroupName)
			if _, err := tx.ExecContext(ctx, deleteAccountGroup, name); err != nil {
				return r.db.classify(ErrExecutingStatement, err)
			}

			for _, account := range g.Accounts {
				if account = strings.TrimSpace(account); account == "" {
					continue
				}
				res, err := tx.ExecContext(ctx, insertAccountGroupMember, name, account)
				if err != nil {
					return r.db.classify(ErrExecutingStatement, err)
				}
				n, err := res.RowsAffected()
				if err != nil {
					return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
				}
				written += n
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "accountRepository.ReplaceAccountGroups").Msg("failed to replace account groups")
		return 0, err
	}

	log.Info().
		Str("func", "accountRepository.ReplaceAccountGroups").
		Int("groups_count", len(groups)).
		Int64("members_count", written).
		Msg("replaced account groups")
	return written, nil
}

// DeleteAccountGroups removes the named groups and returns the number of
// member rows removed. Unknown names are ignored.
func (r *accountRepository) DeleteAccountGroups(ctx context.Context, names []string) (int64, error) {
	trimmed := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			trimmed = append(trimmed, name)
		}
	}
	if len(trimmed) == 0 {
		return 0, nil
	}

	query, args, err := sq.Delete("account_groups").Where(sq.Eq{"group_name": trimmed}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "accountRepository.DeleteAccountGroups").Msg("failed to delete account groups")
		return 0, r.db.classify(ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return n, nil
}
