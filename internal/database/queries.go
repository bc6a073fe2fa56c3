/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

const (
	schema = `
	-- Key-value records (one row per persisted wallet record)
	CREATE TABLE IF NOT EXISTS kv_records (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		version INTEGER NOT NULL DEFAULT 1,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	-- Create index for updated_at for recovery scans
	CREATE INDEX IF NOT EXISTS idx_kv_records_updated_at ON kv_records(updated_at);
	`

	queryGetRecord = `
		SELECT value
		FROM kv_records
		WHERE key = ?`

	queryUpsertRecord = `
		INSERT INTO kv_records (key, value, version, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			version = kv_records.version + 1,
			updated_at = CURRENT_TIMESTAMP`

	queryCountRecords = `
		SELECT COUNT(*) FROM kv_records`
)
