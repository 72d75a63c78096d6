// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	selectConfig = `SELECT value FROM configs WHERE name = ? AND id = ?`

	upsertConfig = `INSERT INTO configs (name, id, value)
		VALUES (?, ?, ?)
		ON CONFLICT (name, id) DO UPDATE SET value = excluded.value`

	deleteConfig = `DELETE FROM configs WHERE name = ? AND id = ?`

	findAttachmentsByHash = `SELECT id, data FROM attachments WHERE data_hash = ?`

	touchAttachment = `UPDATE attachments SET updated_at = ? WHERE id = ?`

	insertAttachment = `INSERT INTO attachments (id, mime_type, name, created_at, updated_at, data_hash, data)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	selectAttachmentContent = `SELECT mime_type, data FROM attachments WHERE id = ?`

	deleteUnreferencedAttachments = `DELETE FROM attachments
		WHERE updated_at <= ?
		AND NOT EXISTS (
			SELECT 1 FROM transaction_attachments ta WHERE ta.attachment_id = attachments.id
		)`

	upsertTransaction = `INSERT INTO transactions (id, description, from_account, to_account, amount, trans_date, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			description = excluded.description,
			from_account = excluded.from_account,
			to_account = excluded.to_account,
			amount = excluded.amount,
			trans_date = excluded.trans_date,
			updated_at = excluded.updated_at`

	deleteTransactionAttachments = `DELETE FROM transaction_attachments WHERE transaction_id = ?`
	insertTransactionAttachment  = `INSERT OR IGNORE INTO transaction_attachments (transaction_id, attachment_id) VALUES (?, ?)`

	deleteTransactionTags = `DELETE FROM transaction_tags WHERE transaction_id = ?`
	insertTransactionTag  = `INSERT OR IGNORE INTO transaction_tags (transaction_id, tag) VALUES (?, ?)`

	selectAccountGroups = `SELECT group_name, json_group_array(account_name)
		FROM (SELECT group_name, account_name FROM account_groups ORDER BY group_name, account_name)
		GROUP BY group_name
		ORDER BY group_name`

	deleteAccountGroup       = `DELETE FROM account_groups WHERE group_name = ?`
	insertAccountGroupMember = `INSERT OR IGNORE INTO account_groups (group_name, account_name) VALUES (?, ?)`

	// list aggregates
	transactionAggregate = `COUNT(*), COALESCE(SUM(amount), 0)`
	accountAggregate     = `COUNT(*), COALESCE(SUM(balance), 0)`
)
